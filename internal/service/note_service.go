// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/smart-notes/internal/aggregate"
	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/internal/notify"
	"github.com/MKhiriev/smart-notes/internal/store"
	"github.com/MKhiriev/smart-notes/internal/utils"
	"github.com/MKhiriev/smart-notes/internal/validators"
	"github.com/MKhiriev/smart-notes/models"
)

const (
	DefaultListLimit   = 20
	DefaultRecentLimit = 5
)

type noteService struct {
	local     *LocalStore
	sync      SyncService
	notifier  *notify.Notifier
	validator validators.Validator
	ids       utils.IDGenerator
	now       func() time.Time

	inflight sync.WaitGroup

	logger *logger.Logger
}

// NewNoteService builds the local-first [NoteService]. Remote work is handed
// to syncService on background goroutines tracked by Wait.
func NewNoteService(
	local *LocalStore,
	syncService SyncService,
	notifier *notify.Notifier,
	validator validators.Validator,
	ids utils.IDGenerator,
	log *logger.Logger,
) NoteService {
	return &noteService{
		local:     local,
		sync:      syncService,
		notifier:  notifier,
		validator: validator,
		ids:       ids,
		now:       time.Now,
		logger:    log,
	}
}

func (s *noteService) Add(ctx context.Context, note models.SmartNote) (models.SmartNote, error) {
	note = note.Clone()
	if note.ID == "" {
		note.ID = s.ids.Generate()
	}
	if note.Ts == 0 {
		note.Ts = s.now().UnixMilli()
	}
	if note.Events == nil {
		note.Events = []models.Event{}
	}
	note.SyncStatus = models.SyncStatusUnsynced

	if err := s.validator.Validate(ctx, note); err != nil {
		return models.SmartNote{}, fmt.Errorf("%w: %w", ErrInvalidNote, err)
	}

	if err := s.local.put(ctx, note); err != nil {
		s.logger.Err(err).Str("func", "noteService.Add").Str("note_id", note.ID).Msg("error saving note locally")
		return models.SmartNote{}, fmt.Errorf("save note locally: %w", err)
	}
	s.notifier.Emit()

	pushed := note.Clone()
	s.dispatch(ctx, "noteService.Add", note.ID, func(ctx context.Context) error {
		return s.sync.PersistRemote(ctx, pushed)
	})

	return note, nil
}

func (s *noteService) Update(ctx context.Context, id string, patch models.NotePatch) (models.SmartNote, bool, error) {
	// a missing note wins over an invalid patch
	if _, err := s.local.get(ctx, id); errors.Is(err, store.ErrNoteNotFound) {
		return models.SmartNote{}, false, nil
	} else if err != nil {
		s.logger.Err(err).Str("func", "noteService.Update").Str("note_id", id).Msg("error reading note locally")
		return models.SmartNote{}, false, fmt.Errorf("read note locally: %w", err)
	}

	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.SmartNote{}, false, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	updated, ok, err := s.local.modify(ctx, id, func(n *models.SmartNote) bool {
		*n = patch.Apply(*n)
		n.SyncStatus = models.SyncStatusUnsynced
		return true
	})
	if err != nil {
		s.logger.Err(err).Str("func", "noteService.Update").Str("note_id", id).Msg("error updating note locally")
		return models.SmartNote{}, false, fmt.Errorf("update note locally: %w", err)
	}
	if !ok {
		return models.SmartNote{}, false, nil
	}
	s.notifier.Emit()

	pushed := updated.Clone()
	s.dispatch(ctx, "noteService.Update", id, func(ctx context.Context) error {
		return s.sync.PersistRemote(ctx, pushed)
	})

	return updated, true, nil
}

func (s *noteService) Remove(ctx context.Context, id string) error {
	existing, existed, err := s.local.remove(ctx, id)
	if err != nil {
		s.logger.Err(err).Str("func", "noteService.Remove").Str("note_id", id).Msg("error deleting note locally")
		return fmt.Errorf("delete note locally: %w", err)
	}
	s.notifier.Emit()

	if !existed {
		return nil
	}

	s.dispatch(ctx, "noteService.Remove", id, func(ctx context.Context) error {
		return s.sync.RemoveRemote(ctx, existing)
	})

	return nil
}

func (s *noteService) Get(ctx context.Context, id string) (models.SmartNote, error) {
	note, err := s.local.get(ctx, id)
	if err != nil {
		return models.SmartNote{}, fmt.Errorf("get note %s: %w", id, err)
	}
	return note, nil
}

// List fetches one note more than requested to learn whether another page
// exists. NextCursor is the ts of the last returned note.
func (s *noteService) List(ctx context.Context, cursor *int64, limit int) (models.NotePage, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	notes, err := s.local.fetchPage(ctx, limit+1, cursor)
	if err != nil {
		return models.NotePage{}, fmt.Errorf("list notes: %w", err)
	}

	page := models.NotePage{Notes: notes}
	if len(notes) > limit {
		page.Notes = notes[:limit]
		page.HasMore = true
		next := page.Notes[limit-1].Ts
		page.NextCursor = &next
	}

	return page, nil
}

func (s *noteService) Recent(ctx context.Context, limit int) ([]models.SmartNote, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	notes, err := s.local.fetchPage(ctx, limit, nil)
	if err != nil {
		return nil, fmt.Errorf("recent notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) All(ctx context.Context) ([]models.SmartNote, error) {
	notes, err := s.local.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("all notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) TodayAggregates(ctx context.Context) (models.Aggregate, error) {
	notes, err := s.local.all(ctx)
	if err != nil {
		return models.Aggregate{}, fmt.Errorf("today aggregates: %w", err)
	}

	today := aggregate.FilterToday(notes, s.now())
	return aggregate.SumEvents(today, aggregate.OrderChronological), nil
}

func (s *noteService) Subscribe(cb func()) func() {
	return s.notifier.Subscribe(cb)
}

func (s *noteService) Wait() {
	s.inflight.Wait()
}

// dispatch runs fn on its own goroutine. The context keeps the caller's
// values but not its cancellation, so remote work outlives the request.
func (s *noteService) dispatch(ctx context.Context, funcName, id string, fn func(context.Context) error) {
	detached := context.WithoutCancel(ctx)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		if err := fn(detached); err != nil {
			s.logger.Debug().Err(err).Str("func", funcName).Str("note_id", id).Msg("remote work finished with error")
		}
	}()
}
