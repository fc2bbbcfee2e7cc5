// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/smart-notes/internal/config"
	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/models"
)

func TestNormalizeNote(t *testing.T) {
	n := normalizeNote(models.SmartNote{ID: "a", Attachments: []models.Attachment{}})
	assert.NotNil(t, n.Events)
	assert.Empty(t, n.Events)
	assert.Nil(t, n.Attachments)

	att := []models.Attachment{{ID: "x", URL: "https://cdn/x"}}
	n = normalizeNote(models.SmartNote{ID: "a", Attachments: att})
	assert.Equal(t, att, n.Attachments)
	n.Attachments[0].ID = "changed"
	assert.Equal(t, "x", att[0].ID)
}

// every backend stores the same shape for nil and empty collections
func TestNoteBackends_CollectionShapes(t *testing.T) {
	backends := map[string]func(t *testing.T) NoteBackend{
		"blob": func(t *testing.T) NoteBackend {
			b, _ := newTestBlobBackend(t)
			return b
		},
		"sqlite": func(t *testing.T) NoteBackend {
			db, err := openIndexedDB(context.Background(), config.ClientDB{DSN: filepath.Join(t.TempDir(), "notes.db")}, logger.Nop())
			if err != nil {
				t.Skipf("sqlite driver unavailable: %v", err)
			}
			t.Cleanup(func() { _ = db.Close() })
			return NewSQLiteNoteBackend(db, logger.Nop())
		},
	}

	shapes := []struct {
		name string
		note models.SmartNote
		want models.SmartNote
	}{
		{
			name: "nil collections",
			note: models.SmartNote{ID: "n", Ts: 1},
			want: models.SmartNote{ID: "n", Ts: 1, Events: []models.Event{}},
		},
		{
			name: "empty collections",
			note: models.SmartNote{ID: "n", Ts: 1, Events: []models.Event{}, Attachments: []models.Attachment{}},
			want: models.SmartNote{ID: "n", Ts: 1, Events: []models.Event{}},
		},
		{
			name: "filled collections",
			note: models.SmartNote{
				ID: "n", Ts: 1,
				Events:      []models.Event{models.NewRestEvent(1)},
				Attachments: []models.Attachment{{ID: "x", URL: "https://cdn/x"}},
			},
			want: models.SmartNote{
				ID: "n", Ts: 1,
				Events:      []models.Event{models.NewRestEvent(1)},
				Attachments: []models.Attachment{{ID: "x", URL: "https://cdn/x"}},
			},
		},
	}

	for name, newBackend := range backends {
		for _, tt := range shapes {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				backend := newBackend(t)
				ctx := context.Background()

				require.NoError(t, backend.Put(ctx, tt.note))

				got, err := backend.Get(ctx, "n")
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)

				all, err := backend.All(ctx)
				require.NoError(t, err)
				require.Len(t, all, 1)
				assert.Equal(t, tt.want, all[0])
			})
		}
	}
}
