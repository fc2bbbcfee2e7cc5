// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/smart-notes/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// NoteBackend is the local persistence contract shared by the indexed
// SQLite backend and the serialized-blob fallback. Every listing is ordered
// by ts descending. Implementations never emit change notifications.
type NoteBackend interface {
	// Put inserts the note or replaces the stored note with the same id.
	Put(ctx context.Context, note models.SmartNote) error
	// Get returns the note with id or [ErrNoteNotFound].
	Get(ctx context.Context, id string) (models.SmartNote, error)
	// Delete removes the note with id. Deleting an absent note is a no-op.
	Delete(ctx context.Context, id string) error
	// FetchPage returns at most limit notes, restricted to ts < *cursor when
	// cursor is not nil. limit <= 0 yields an empty result.
	FetchPage(ctx context.Context, limit int, cursor *int64) ([]models.SmartNote, error)
	// All returns the full collection.
	All(ctx context.Context) ([]models.SmartNote, error)
}

// KeyValueStore is a durable string-keyed byte store backing the blob
// fallback.
type KeyValueStore interface {
	// Get returns the value stored under key or [ErrKeyNotFound].
	Get(ctx context.Context, key string) ([]byte, error)
	// Set durably stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
