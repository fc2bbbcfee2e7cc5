// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/models"
)

// FallbackKey is the key holding the serialized note collection.
const FallbackKey = "smart_notes_fallback"

// blobNoteBackend keeps the whole collection as one JSON array under
// [FallbackKey]. Every operation reads the full blob; writes rewrite it.
type blobNoteBackend struct {
	kv     KeyValueStore
	logger *logger.Logger

	// serializes read-modify-write cycles of the blob within this process
	mu sync.Mutex
}

// NewBlobNoteBackend returns a [NoteBackend] serialized into kv.
func NewBlobNoteBackend(kv KeyValueStore, log *logger.Logger) NoteBackend {
	return &blobNoteBackend{kv: kv, logger: log}
}

func (b *blobNoteBackend) Put(ctx context.Context, note models.SmartNote) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	notes, err := b.load(ctx)
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(notes, func(n models.SmartNote) bool { return n.ID == note.ID })
	stored := normalizeNote(note)
	if idx >= 0 {
		notes[idx] = stored
	} else {
		notes = append([]models.SmartNote{stored}, notes...)
	}

	sort.SliceStable(notes, func(i, j int) bool { return notes[i].Ts > notes[j].Ts })

	return b.save(ctx, notes)
}

func (b *blobNoteBackend) Get(ctx context.Context, id string) (models.SmartNote, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	notes, err := b.load(ctx)
	if err != nil {
		return models.SmartNote{}, err
	}

	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}

	return models.SmartNote{}, ErrNoteNotFound
}

func (b *blobNoteBackend) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	notes, err := b.load(ctx)
	if err != nil {
		return err
	}

	match := func(n models.SmartNote) bool { return n.ID == id }
	if !slices.ContainsFunc(notes, match) {
		return nil
	}

	return b.save(ctx, slices.DeleteFunc(notes, match))
}

func (b *blobNoteBackend) FetchPage(ctx context.Context, limit int, cursor *int64) ([]models.SmartNote, error) {
	if limit <= 0 {
		return []models.SmartNote{}, nil
	}

	all, err := b.All(ctx)
	if err != nil {
		return nil, err
	}

	page := make([]models.SmartNote, 0, min(limit, len(all)))
	for _, n := range all {
		if cursor != nil && n.Ts >= *cursor {
			continue
		}
		page = append(page, n)
		if len(page) == limit {
			break
		}
	}

	return page, nil
}

func (b *blobNoteBackend) All(ctx context.Context) ([]models.SmartNote, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	notes, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	// the writer keeps the blob sorted, but data written elsewhere may not be
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].Ts > notes[j].Ts })
	return notes, nil
}

// load decodes the blob. A missing or malformed blob is an empty collection.
func (b *blobNoteBackend) load(ctx context.Context) ([]models.SmartNote, error) {
	raw, err := b.kv.Get(ctx, FallbackKey)
	if errors.Is(err, ErrKeyNotFound) {
		return []models.SmartNote{}, nil
	}
	if err != nil {
		b.logger.Err(err).Str("func", "blobNoteBackend.load").Msg("error reading fallback blob")
		return nil, fmt.Errorf("error reading fallback blob: %w", err)
	}

	var notes []models.SmartNote
	if err = json.Unmarshal(raw, &notes); err != nil {
		b.logger.Warn().Err(err).Str("func", "blobNoteBackend.load").Msg("malformed fallback blob, treating as empty")
		return []models.SmartNote{}, nil
	}
	if notes == nil {
		notes = []models.SmartNote{}
	}
	for i := range notes {
		notes[i] = normalizeNote(notes[i])
	}

	return notes, nil
}

func (b *blobNoteBackend) save(ctx context.Context, notes []models.SmartNote) error {
	raw, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingNote, err)
	}

	if err = b.kv.Set(ctx, FallbackKey, raw); err != nil {
		b.logger.Err(err).Str("func", "blobNoteBackend.save").Msg("error writing fallback blob")
		return fmt.Errorf("error writing fallback blob: %w", err)
	}

	return nil
}
