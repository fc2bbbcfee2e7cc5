// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by note backends. Callers should use [errors.Is]
// to match against these values.
var (
	// ErrNoteNotFound is returned by Get when no note with the requested id
	// exists in the active backend.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrBackendUnavailable is returned when the indexed database can't be
	// used (no DSN configured, driver missing, ping or migration failure).
	// It triggers the permanent fallback to the blob backend.
	ErrBackendUnavailable = errors.New("indexed backend is unavailable")

	// ErrKeyNotFound is returned by a [KeyValueStore] for an absent key.
	ErrKeyNotFound = errors.New("key was not found")
)

// Low-level database operation errors. These are wrapped by the SQLite
// backend when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a note row fails.
	ErrScanningRow = errors.New("failed to scan note row")

	// ErrEncodingNote is returned when a note can't be serialized for storage.
	ErrEncodingNote = errors.New("failed to encode note")
)
