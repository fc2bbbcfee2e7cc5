// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/models"
)

func newTestBlobBackend(t *testing.T) (NoteBackend, KeyValueStore) {
	t.Helper()

	kv, err := NewFileKeyValueStore(t.TempDir())
	require.NoError(t, err)

	return NewBlobNoteBackend(kv, logger.Nop()), kv
}

func ids(notes []models.SmartNote) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestBlobNoteBackend_PutGet(t *testing.T) {
	backend, _ := newTestBlobBackend(t)
	ctx := context.Background()

	note := models.SmartNote{ID: "n1", Ts: 10, Events: []models.Event{models.NewPushupsEvent(20, 0.9)}}
	require.NoError(t, backend.Put(ctx, note))

	got, err := backend.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, note, got)
}

func TestBlobNoteBackend_Get_NotFound(t *testing.T) {
	backend, _ := newTestBlobBackend(t)

	_, err := backend.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestBlobNoteBackend_Put_ReplacesInPlace(t *testing.T) {
	backend, _ := newTestBlobBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.Put(ctx, models.SmartNote{ID: "a", Ts: 10, Content: "old"}))
	require.NoError(t, backend.Put(ctx, models.SmartNote{ID: "b", Ts: 20}))
	require.NoError(t, backend.Put(ctx, models.SmartNote{ID: "a", Ts: 10, Content: "new"}))

	all, err := backend.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(all))
	assert.Equal(t, "new", all[1].Content)
}

func TestBlobNoteBackend_SortedDescendingByTs(t *testing.T) {
	backend, _ := newTestBlobBackend(t)
	ctx := context.Background()

	for _, n := range []models.SmartNote{{ID: "mid", Ts: 20}, {ID: "old", Ts: 10}, {ID: "new", Ts: 30}} {
		require.NoError(t, backend.Put(ctx, n))
	}

	all, err := backend.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(all))
}

func TestBlobNoteBackend_EqualTsNewestInsertFirst(t *testing.T) {
	backend, _ := newTestBlobBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.Put(ctx, models.SmartNote{ID: "first", Ts: 10}))
	require.NoError(t, backend.Put(ctx, models.SmartNote{ID: "second", Ts: 10}))

	all, err := backend.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, ids(all))
}

func TestBlobNoteBackend_Delete(t *testing.T) {
	backend, _ := newTestBlobBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.Put(ctx, models.SmartNote{ID: "a", Ts: 10}))
	require.NoError(t, backend.Put(ctx, models.SmartNote{ID: "b", Ts: 20}))

	require.NoError(t, backend.Delete(ctx, "a"))
	require.NoError(t, backend.Delete(ctx, "a"), "delete is idempotent")
	require.NoError(t, backend.Delete(ctx, "never-existed"))

	all, err := backend.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(all))
}

func TestBlobNoteBackend_FetchPage(t *testing.T) {
	backend, _ := newTestBlobBackend(t)
	ctx := context.Background()

	for i, id := range []string{"n1", "n2", "n3", "n4", "n5"} {
		require.NoError(t, backend.Put(ctx, models.SmartNote{ID: id, Ts: int64((i + 1) * 10)}))
	}

	first, err := backend.FetchPage(ctx, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"n5", "n4"}, ids(first))

	cursor := first[len(first)-1].Ts
	second, err := backend.FetchPage(ctx, 2, &cursor)
	require.NoError(t, err)
	assert.Equal(t, []string{"n3", "n2"}, ids(second))

	cursor = second[len(second)-1].Ts
	last, err := backend.FetchPage(ctx, 10, &cursor)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, ids(last))

	none, err := backend.FetchPage(ctx, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBlobNoteBackend_MalformedBlobIsEmpty(t *testing.T) {
	backend, kv := newTestBlobBackend(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, FallbackKey, []byte("{definitely not an array")))

	all, err := backend.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// the next write replaces the corrupt blob
	require.NoError(t, backend.Put(ctx, models.SmartNote{ID: "n1", Ts: 1}))
	raw, err := kv.Get(ctx, FallbackKey)
	require.NoError(t, err)

	var stored []models.SmartNote
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, []string{"n1"}, ids(stored))
}

func TestBlobNoteBackend_StoredCopyIsIsolated(t *testing.T) {
	backend, _ := newTestBlobBackend(t)
	ctx := context.Background()

	note := models.SmartNote{ID: "n1", Ts: 1, Events: []models.Event{models.NewDrinkEvent(250, 1)}}
	require.NoError(t, backend.Put(ctx, note))
	note.Events[0].VolumeMl = 9999

	got, err := backend.Get(ctx, "n1")
	require.NoError(t, err)
	assert.InDelta(t, 250, got.Events[0].VolumeMl, 0.001)
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingKV) Set(context.Context, string, []byte) error   { return f.err }
func (f failingKV) Delete(context.Context, string) error        { return f.err }

func TestBlobNoteBackend_KVErrorsPropagate(t *testing.T) {
	kvErr := errors.New("kv down")
	backend := NewBlobNoteBackend(failingKV{err: kvErr}, logger.Nop())
	ctx := context.Background()

	assert.ErrorIs(t, backend.Put(ctx, models.SmartNote{ID: "n1"}), kvErr)
	_, err := backend.Get(ctx, "n1")
	assert.ErrorIs(t, err, kvErr)
	_, err = backend.All(ctx)
	assert.ErrorIs(t, err, kvErr)
}
