// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/smart-notes/internal/config"
	"github.com/MKhiriev/smart-notes/internal/logger"
)

// Backend names reported by [ClientStorages.Backend].
const (
	BackendSQLite = "sqlite"
	BackendBlob   = "blob"
)

// ClientStorages groups the client-side storage selected at start-up.
// Callers use Notes without knowing which backend serves it.
type ClientStorages struct {
	// Notes is the active note backend.
	Notes NoteBackend

	backend string
	closers []io.Closer
}

// NewClientStorages selects the note backend once for the process lifetime:
//  1. Opens the SQLite database at cfg.DB.DSN and pings it.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. On any failure in steps 1-2, logs a warning and falls back to the
//     serialized-blob backend over a key-value store (Redis when
//     cfg.KV.RedisAddr is set, files in cfg.KV.Dir otherwise).
//
// Returns an error only if neither backend can be constructed.
func NewClientStorages(cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")
	ctx := context.Background()

	db, err := openIndexedDB(ctx, cfg.DB, log)
	if err == nil {
		log.Info().Str("backend", BackendSQLite).Msg("using indexed note backend")
		return &ClientStorages{
			Notes:   NewSQLiteNoteBackend(db, log),
			backend: BackendSQLite,
			closers: []io.Closer{db},
		}, nil
	}
	log.Warn().Err(err).Str("func", "NewClientStorages").Msg("indexed backend unavailable, falling back to blob backend")

	kv, closer, err := openKeyValueStore(ctx, cfg.KV, log)
	if err != nil {
		return nil, fmt.Errorf("fallback storage error: %w", err)
	}

	s := &ClientStorages{
		Notes:   NewBlobNoteBackend(kv, log),
		backend: BackendBlob,
	}
	if closer != nil {
		s.closers = append(s.closers, closer)
	}
	log.Info().Str("backend", BackendBlob).Msg("using fallback note backend")

	return s, nil
}

// Backend reports the active backend name. Diagnostics only.
func (s *ClientStorages) Backend() string {
	return s.backend
}

// Close releases the connections held by the active backend.
func (s *ClientStorages) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func openIndexedDB(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migration failed: %w", ErrBackendUnavailable, err)
	}

	return db, nil
}

func openKeyValueStore(ctx context.Context, cfg config.ClientKV, log *logger.Logger) (KeyValueStore, io.Closer, error) {
	if cfg.RedisAddr != "" {
		kv, err := NewRedisKeyValueStore(ctx, cfg)
		if err == nil {
			return kv, kv.(io.Closer), nil
		}
		if cfg.Dir == "" {
			return nil, nil, err
		}
		log.Warn().Err(err).Str("func", "openKeyValueStore").Str("dir", cfg.Dir).Msg("redis unavailable, using file key-value store")
	}

	kv, err := NewFileKeyValueStore(cfg.Dir)
	if err != nil {
		return nil, nil, err
	}

	return kv, nil, nil
}
