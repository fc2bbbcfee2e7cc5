// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/smart-notes/internal/adapter"
	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/internal/notify"
	"github.com/MKhiriev/smart-notes/internal/store"
	"github.com/MKhiriev/smart-notes/models"
)

type syncService struct {
	local    *LocalStore
	remote   adapter.NoteService
	session  adapter.SessionResolver
	notifier *notify.Notifier

	// flight keys are note ids
	flight singleflight.Group

	logger *logger.Logger
}

// NewSyncService builds the [SyncService] pushing local notes to remote and
// reconciling the local collection with it.
func NewSyncService(
	local *LocalStore,
	remote adapter.NoteService,
	session adapter.SessionResolver,
	notifier *notify.Notifier,
	log *logger.Logger,
) SyncService {
	return &syncService{
		local:    local,
		remote:   remote,
		session:  session,
		notifier: notifier,
		logger:   log,
	}
}

func (s *syncService) PersistRemote(ctx context.Context, note models.SmartNote) error {
	identity, ok := s.identity(ctx, "syncService.PersistRemote")
	if !ok {
		return nil
	}

	err := s.exclusive(note.ID, func() error {
		return s.push(ctx, identity, note.ID)
	})
	if errors.Is(err, adapter.ErrRemoteDisabled) {
		return nil
	}
	return err
}

func (s *syncService) SyncFromRemote(ctx context.Context) error {
	identity, ok := s.identity(ctx, "syncService.SyncFromRemote")
	if !ok {
		return nil
	}

	remoteNotes, err := s.remote.FetchAll(ctx, identity)
	if errors.Is(err, adapter.ErrRemoteDisabled) {
		return nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "syncService.SyncFromRemote").Msg("error fetching remote notes")
		return fmt.Errorf("fetch remote notes: %w", err)
	}

	err = s.local.locked(func(notes store.NoteBackend) error {
		return s.reconcile(ctx, notes, remoteNotes)
	})
	// one notification for the whole pass, also after a partial failure
	s.notifier.Emit()

	if err != nil {
		s.logger.Warn().Err(err).Str("func", "syncService.SyncFromRemote").Msg("reconciliation finished with errors")
		return fmt.Errorf("reconcile local notes: %w", err)
	}

	return nil
}

func (s *syncService) RemoveRemote(ctx context.Context, note models.SmartNote) error {
	identity, ok := s.identity(ctx, "syncService.RemoveRemote")
	if !ok {
		return nil
	}

	return s.exclusive(note.ID, func() error {
		err := s.remote.Delete(ctx, identity, note)
		if errors.Is(err, adapter.ErrRemoteDisabled) {
			return nil
		}
		if err != nil {
			s.logger.Warn().Err(err).Str("func", "syncService.RemoveRemote").Str("note_id", note.ID).Msg("error deleting remote note")
			return fmt.Errorf("delete remote note %s: %w", note.ID, err)
		}
		return nil
	})
}

func (s *syncService) RetryFailed(ctx context.Context) error {
	identity, ok := s.identity(ctx, "syncService.RetryFailed")
	if !ok {
		return nil
	}

	notes, err := s.local.all(ctx)
	if err != nil {
		return fmt.Errorf("load local notes: %w", err)
	}

	var errs []error
	for _, note := range notes {
		// a stale syncing status is left behind by a push that never finished
		if !note.SyncStatus.NeedsPush() && note.SyncStatus != models.SyncStatusSyncing {
			continue
		}

		id := note.ID
		err = s.exclusive(id, func() error {
			return s.push(ctx, identity, id)
		})
		if errors.Is(err, adapter.ErrRemoteDisabled) {
			return nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// push sends the current local version of the note with id. Status writes
// re-read the note and are dropped when it was deleted or edited meanwhile.
func (s *syncService) push(ctx context.Context, identity, id string) error {
	var previous models.SyncStatus
	note, ok, err := s.local.modify(ctx, id, func(n *models.SmartNote) bool {
		if n.SyncStatus == models.SyncStatusSynced || !n.SyncStatus.CanTransition(models.SyncStatusSyncing) {
			return false
		}
		previous = n.SyncStatus
		n.SyncStatus = models.SyncStatusSyncing
		return true
	})
	if err != nil {
		return fmt.Errorf("mark note %s syncing: %w", id, err)
	}
	if !ok {
		return nil
	}

	stored, err := s.remote.Upsert(ctx, identity, note)
	if errors.Is(err, adapter.ErrRemoteDisabled) {
		_, _, rerr := s.local.modify(ctx, id, func(n *models.SmartNote) bool {
			if n.SyncStatus != models.SyncStatusSyncing {
				return false
			}
			n.SyncStatus = previous
			return true
		})
		if rerr != nil {
			return fmt.Errorf("restore note %s status: %w", id, rerr)
		}
		return err
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "syncService.push").Str("note_id", id).Msg("error pushing note to remote")
		if _, _, ferr := s.local.modify(ctx, id, transitionFrom(models.SyncStatusSyncing, models.SyncStatusFailed)); ferr != nil {
			s.logger.Err(ferr).Str("func", "syncService.push").Str("note_id", id).Msg("error marking note sync failed")
		}
		return fmt.Errorf("push note %s: %w", id, err)
	}

	resolveAttachments := note.HasPendingUpload()
	wasPending := note.Pending
	_, written, err := s.local.modify(ctx, id, func(n *models.SmartNote) bool {
		if n.SyncStatus != models.SyncStatusSyncing {
			// edited while in flight, the newer version waits for its own push
			return false
		}
		if resolveAttachments {
			n.Attachments = append([]models.Attachment(nil), stored.Attachments...)
		}
		n.SyncStatus = models.SyncStatusSynced
		n.Pending = false
		return true
	})
	if err != nil {
		return fmt.Errorf("mark note %s synced: %w", id, err)
	}

	if written && (resolveAttachments || wasPending) {
		s.notifier.Emit()
	}

	return nil
}

// reconcile upserts every remote note and deletes local notes the remote
// does not know, except those whose latest local write is not confirmed yet.
// Such notes are also not overwritten by their remote version.
func (s *syncService) reconcile(ctx context.Context, notes store.NoteBackend, remoteNotes []models.SmartNote) error {
	localNotes, err := notes.All(ctx)
	if err != nil {
		return fmt.Errorf("load local notes: %w", err)
	}

	localByID := make(map[string]models.SmartNote, len(localNotes))
	for _, n := range localNotes {
		localByID[n.ID] = n
	}

	var errs []error
	remoteIDs := make(map[string]struct{}, len(remoteNotes))
	for _, r := range remoteNotes {
		remoteIDs[r.ID] = struct{}{}

		if l, ok := localByID[r.ID]; ok && unconfirmed(l) {
			continue
		}

		r.Pending = false
		r.SyncStatus = models.SyncStatusSynced
		if r.Events == nil {
			r.Events = []models.Event{}
		}
		if err = notes.Put(ctx, r); err != nil {
			errs = append(errs, fmt.Errorf("save remote note %s: %w", r.ID, err))
		}
	}

	for _, l := range localNotes {
		if _, ok := remoteIDs[l.ID]; ok || unconfirmed(l) {
			continue
		}
		if err = notes.Delete(ctx, l.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete local note %s: %w", l.ID, err))
		}
	}

	return errors.Join(errs...)
}

// unconfirmed reports whether the remote cannot know the latest local
// version of n. Notes without a recorded status follow the Pending flag.
func unconfirmed(n models.SmartNote) bool {
	return n.Pending || n.SyncStatus.AwaitingConfirmation()
}

func transitionFrom(from, to models.SyncStatus) func(*models.SmartNote) bool {
	return func(n *models.SmartNote) bool {
		if n.SyncStatus != from || !from.CanTransition(to) {
			return false
		}
		n.SyncStatus = to
		return true
	}
}

// identity resolves the current identity. The bool result is false when
// nobody is signed in or the resolver failed; remote work is skipped then.
func (s *syncService) identity(ctx context.Context, funcName string) (string, bool) {
	identity, err := s.session.CurrentIdentity(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Str("func", funcName).Msg("no identity, skipping remote work")
		return "", false
	}
	if identity == "" {
		s.logger.Debug().Str("func", funcName).Msg("not signed in, skipping remote work")
		return "", false
	}
	return identity, true
}

// exclusive runs fn under the flight of key. A caller that joined a flight
// started by someone else runs fn once more, so its own effect is not lost.
func (s *syncService) exclusive(key string, fn func() error) error {
	call := func() (any, error) {
		return nil, fn()
	}

	_, err, shared := s.flight.Do(key, call)
	if shared {
		_, err, _ = s.flight.Do(key, call)
	}
	return err
}
