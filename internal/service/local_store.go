// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/smart-notes/internal/store"
	"github.com/MKhiriev/smart-notes/models"
)

// LocalStore wraps a [store.NoteBackend] shared by the note and sync
// services. Read-modify-write sequences run under one lock, so an edit made
// while a push is in flight is never overwritten by a stale status update.
type LocalStore struct {
	notes store.NoteBackend
	mu    sync.Mutex
}

func NewLocalStore(notes store.NoteBackend) *LocalStore {
	return &LocalStore{notes: notes}
}

func (l *LocalStore) put(ctx context.Context, note models.SmartNote) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.notes.Put(ctx, note)
}

func (l *LocalStore) get(ctx context.Context, id string) (models.SmartNote, error) {
	return l.notes.Get(ctx, id)
}

func (l *LocalStore) fetchPage(ctx context.Context, limit int, cursor *int64) ([]models.SmartNote, error) {
	return l.notes.FetchPage(ctx, limit, cursor)
}

func (l *LocalStore) all(ctx context.Context) ([]models.SmartNote, error) {
	return l.notes.All(ctx)
}

// modify reads the note with id, lets fn change it and stores the result.
// fn returning false leaves the note untouched. The bool result reports
// whether the note was written; a missing note is not an error.
func (l *LocalStore) modify(ctx context.Context, id string, fn func(*models.SmartNote) bool) (models.SmartNote, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	note, err := l.notes.Get(ctx, id)
	if errors.Is(err, store.ErrNoteNotFound) {
		return models.SmartNote{}, false, nil
	}
	if err != nil {
		return models.SmartNote{}, false, err
	}

	if !fn(&note) {
		return note, false, nil
	}
	if err = l.notes.Put(ctx, note); err != nil {
		return models.SmartNote{}, false, err
	}

	return note, true, nil
}

// remove deletes the note with id and returns what was stored before.
func (l *LocalStore) remove(ctx context.Context, id string) (models.SmartNote, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.notes.Get(ctx, id)
	existed := err == nil
	if err != nil && !errors.Is(err, store.ErrNoteNotFound) {
		return models.SmartNote{}, false, err
	}

	if err = l.notes.Delete(ctx, id); err != nil {
		return models.SmartNote{}, false, err
	}

	return existing, existed, nil
}

// locked runs fn with exclusive access to the backend.
func (l *LocalStore) locked(fn func(notes store.NoteBackend) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return fn(l.notes)
}
