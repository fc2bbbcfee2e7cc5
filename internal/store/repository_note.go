// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/models"
)

// sqliteNoteBackend is the indexed [NoteBackend] over the smart_notes table.
type sqliteNoteBackend struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLiteNoteBackend returns a [NoteBackend] stored in db. The schema must
// already be migrated.
func NewSQLiteNoteBackend(db *DB, log *logger.Logger) NoteBackend {
	return &sqliteNoteBackend{db: db, logger: log}
}

func (s *sqliteNoteBackend) Put(ctx context.Context, note models.SmartNote) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertNoteQuery(note)
	if err != nil {
		log.Err(err).Str("func", "sqliteNoteBackend.Put").Str("note_id", note.ID).Msg("error building upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sqliteNoteBackend.Put").Str("note_id", note.ID).Msg("failed to execute upsert for note")
		return fmt.Errorf("%w: upsert note (id=%s): %w", ErrExecutingStatement, note.ID, err)
	}

	return nil
}

func (s *sqliteNoteBackend) Get(ctx context.Context, id string) (models.SmartNote, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectNoteQuery(id)
	if err != nil {
		return models.SmartNote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	note, err := scanNote(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SmartNote{}, ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "sqliteNoteBackend.Get").Str("note_id", id).Msg("failed to scan note row")
		return models.SmartNote{}, err
	}

	return note, nil
}

func (s *sqliteNoteBackend) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteNoteQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sqliteNoteBackend.Delete").Str("note_id", id).Msg("failed to delete note")
		return fmt.Errorf("%w: delete note (id=%s): %w", ErrExecutingStatement, id, err)
	}

	return nil
}

func (s *sqliteNoteBackend) FetchPage(ctx context.Context, limit int, cursor *int64) ([]models.SmartNote, error) {
	if limit <= 0 {
		return []models.SmartNote{}, nil
	}

	query, args, err := buildFetchPageQuery(limit, cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.queryNotes(ctx, "sqliteNoteBackend.FetchPage", query, args)
}

func (s *sqliteNoteBackend) All(ctx context.Context) ([]models.SmartNote, error) {
	query, args, err := buildSelectAllNotesQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.queryNotes(ctx, "sqliteNoteBackend.All", query, args)
}

func (s *sqliteNoteBackend) queryNotes(ctx context.Context, funcName, query string, args []any) ([]models.SmartNote, error) {
	log := logger.FromContext(ctx)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.SmartNote, 0)
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan note row")
			return nil, scanErr
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating over note rows")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return notes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.SmartNote, error) {
	var (
		note        models.SmartNote
		content     sql.NullString
		events      sql.NullString
		attachments sql.NullString
		syncStatus  sql.NullString
	)

	err := row.Scan(
		&note.ID,
		&note.Ts,
		&content,
		&events,
		&attachments,
		&note.Pending,
		&syncStatus,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SmartNote{}, err
	}
	if err != nil {
		return models.SmartNote{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	note.Content = content.String
	note.SyncStatus = models.SyncStatus(syncStatus.String)

	if events.Valid && events.String != "" {
		if err = json.Unmarshal([]byte(events.String), &note.Events); err != nil {
			return models.SmartNote{}, fmt.Errorf("%w: events of note %s: %w", ErrScanningRow, note.ID, err)
		}
	}

	if attachments.Valid && attachments.String != "" {
		if err = json.Unmarshal([]byte(attachments.String), &note.Attachments); err != nil {
			return models.SmartNote{}, fmt.Errorf("%w: attachments of note %s: %w", ErrScanningRow, note.ID, err)
		}
	}

	note = normalizeNote(note)

	return note, nil
}
