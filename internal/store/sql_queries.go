// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/smart-notes/models"
)

const notesTable = "smart_notes"

var noteColumns = []string{
	"id",
	"ts",
	"content",
	"events",
	"attachments",
	"pending",
	"sync_status",
}

// upsertConflictClause replaces every mutable column of an existing row.
const upsertConflictClause = `ON CONFLICT(id) DO UPDATE SET
	ts = excluded.ts,
	content = excluded.content,
	events = excluded.events,
	attachments = excluded.attachments,
	pending = excluded.pending,
	sync_status = excluded.sync_status`

// sqlite uses "?" placeholders
var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// newest first; rowid breaks ties on equal ts in insertion order
var noteOrder = []string{"ts DESC", "rowid DESC"}

func buildUpsertNoteQuery(note models.SmartNote) (string, []any, error) {
	note = normalizeNote(note)
	eventsJSON, err := json.Marshal(note.Events)
	if err != nil {
		return "", nil, fmt.Errorf("%w: events: %w", ErrEncodingNote, err)
	}

	var attachmentsJSON any
	if note.Attachments != nil {
		raw, marshalErr := json.Marshal(note.Attachments)
		if marshalErr != nil {
			return "", nil, fmt.Errorf("%w: attachments: %w", ErrEncodingNote, marshalErr)
		}
		attachmentsJSON = string(raw)
	}

	return sqlite.
		Insert(notesTable).
		Columns(noteColumns...).
		Values(
			note.ID,
			note.Ts,
			note.Content,
			string(eventsJSON),
			attachmentsJSON,
			note.Pending,
			string(note.SyncStatus),
		).
		Suffix(upsertConflictClause).
		ToSql()
}

func buildSelectNoteQuery(id string) (string, []any, error) {
	return sqlite.
		Select(noteColumns...).
		From(notesTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
}

func buildDeleteNoteQuery(id string) (string, []any, error) {
	return sqlite.
		Delete(notesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildFetchPageQuery selects at most limit notes older than cursor.
// Callers guarantee limit > 0.
func buildFetchPageQuery(limit int, cursor *int64) (string, []any, error) {
	q := sqlite.
		Select(noteColumns...).
		From(notesTable)

	if cursor != nil {
		q = q.Where(sq.Lt{"ts": *cursor})
	}

	return q.
		OrderBy(noteOrder...).
		Limit(uint64(limit)).
		ToSql()
}

func buildSelectAllNotesQuery() (string, []any, error) {
	return sqlite.
		Select(noteColumns...).
		From(notesTable).
		OrderBy(noteOrder...).
		ToSql()
}
