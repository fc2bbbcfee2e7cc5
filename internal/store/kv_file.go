// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// fileKeyValueStore keeps every key in its own file under dir. Writes go
// through a temp file and rename, so readers never observe a torn value.
type fileKeyValueStore struct {
	dir string
}

// NewFileKeyValueStore returns a [KeyValueStore] rooted at dir, creating the
// directory when needed.
func NewFileKeyValueStore(dir string) (KeyValueStore, error) {
	if dir == "" {
		return nil, errors.New("key-value directory is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create key-value dir: %w", err)
	}

	return &fileKeyValueStore{dir: dir}, nil
}

func (f *fileKeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read key %q: %w", key, err)
	}

	return raw, nil
}

func (f *fileKeyValueStore) Set(_ context.Context, key string, value []byte) error {
	if err := atomic.WriteFile(f.path(key), bytes.NewReader(value)); err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}

	return nil
}

func (f *fileKeyValueStore) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete key %q: %w", key, err)
	}

	return nil
}

func (f *fileKeyValueStore) path(key string) string {
	return filepath.Join(f.dir, filepath.Base(key)+".json")
}
