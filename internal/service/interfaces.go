// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service orchestrates the smart-notes client: local-first note
// mutations, change notification, remote push and reconciliation, and the
// daily aggregates derived from the local collection.
package service

import (
	"context"

	"github.com/MKhiriev/smart-notes/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// NoteService is the entry point used by the UI and the CLI. Every mutation
// lands in the local store first and emits a change notification; remote
// persistence follows asynchronously and its failures never surface here.
type NoteService interface {
	// Add validates note, assigns an id and a timestamp when missing, stores
	// it as unsynced and dispatches a remote push. It returns the stored note.
	Add(ctx context.Context, note models.SmartNote) (models.SmartNote, error)

	// Update merges patch into the note with id. The bool result is false
	// when no such note exists; nothing is written then and the patch is not
	// validated.
	Update(ctx context.Context, id string, patch models.NotePatch) (models.SmartNote, bool, error)

	// Remove deletes the note with id locally and, when it existed, remotely.
	Remove(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (models.SmartNote, error)

	// List returns one page of notes older than cursor, newest first.
	// limit <= 0 selects the default page size.
	List(ctx context.Context, cursor *int64, limit int) (models.NotePage, error)

	// Recent returns the newest notes. limit <= 0 selects the default.
	Recent(ctx context.Context, limit int) ([]models.SmartNote, error)

	All(ctx context.Context) ([]models.SmartNote, error)

	// TodayAggregates folds the notes created since local midnight.
	TodayAggregates(ctx context.Context) (models.Aggregate, error)

	// Subscribe registers a change callback and returns its remover.
	Subscribe(cb func()) (unsubscribe func())

	// Wait blocks until every dispatched remote operation has finished.
	Wait()
}

// SyncService bridges the local store and the remote note service. All
// operations are best effort: without an identity, or while the remote is
// disabled, they return nil without touching local state.
type SyncService interface {
	// PersistRemote pushes the current local version of note and records the
	// outcome in its sync status. Pushes of one note never overlap.
	PersistRemote(ctx context.Context, note models.SmartNote) error

	// SyncFromRemote makes the local collection mirror the remote one, keeping
	// notes that are pending or still awaiting a confirmed push.
	// A note added with pending=false that was never pushed is kept as well.
	SyncFromRemote(ctx context.Context) error

	// RemoveRemote deletes note from the remote service.
	RemoveRemote(ctx context.Context, note models.SmartNote) error

	// RetryFailed pushes every local note whose last write was not confirmed.
	RetryFailed(ctx context.Context) error
}
