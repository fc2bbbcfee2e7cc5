// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the remote collaborators of the smart-notes
// client: the remote note service and the session resolver.
//
// The package ships an HTTP/REST note service ([NewHTTPNoteService]) and a
// [DisabledNoteService] used while no remote is configured. Identity comes
// from a session lookup endpoint, a bearer token or a fixed value.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/smart-notes/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock -mock_names=NoteService=MockRemoteNoteService

// NoteService is the remote note store, scoped per identity.
// Implementations map transport errors to the sentinel values of this package.
type NoteService interface {
	// Upsert stores note remotely and returns the stored version. Attachments
	// pending upload come back with a durable URL and storage path.
	Upsert(ctx context.Context, identity string, note models.SmartNote) (models.SmartNote, error)

	// Delete removes note and the durable attachments it owns.
	Delete(ctx context.Context, identity string, note models.SmartNote) error

	// FetchAll returns every remote note of identity.
	FetchAll(ctx context.Context, identity string) ([]models.SmartNote, error)

	// FetchPage returns at most limit notes older than cursor (when set),
	// newest first.
	FetchPage(ctx context.Context, identity string, limit int, cursor *int64) ([]models.SmartNote, error)
}

// SessionResolver resolves the identity of the current user. An empty
// identity means nobody is signed in; remote work is skipped then.
type SessionResolver interface {
	CurrentIdentity(ctx context.Context) (string, error)
}
