// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/smart-notes/internal/adapter"
	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/internal/mock"
	"github.com/MKhiriev/smart-notes/internal/notify"
	"github.com/MKhiriev/smart-notes/models"
)

const testIdentity = "user-1"

type syncFixture struct {
	svc      *syncService
	local    *LocalStore
	remote   *mock.MockRemoteNoteService
	session  *mock.MockSessionResolver
	notifier *notify.Notifier
}

func newSyncFixture(t *testing.T) syncFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteNoteService(ctrl)
	session := mock.NewMockSessionResolver(ctrl)
	local := newTestLocal(t)
	notifier := notify.NewNotifier(logger.Nop())

	svc := NewSyncService(local, remote, session, notifier, logger.Nop()).(*syncService)
	return syncFixture{svc: svc, local: local, remote: remote, session: session, notifier: notifier}
}

func (f syncFixture) signedIn() {
	f.session.EXPECT().CurrentIdentity(gomock.Any()).Return(testIdentity, nil).AnyTimes()
}

// ── PersistRemote ───────────────────────────────────────────────────────────

func TestPersistRemote_Success(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	note := models.SmartNote{ID: "a", Ts: 1, Events: []models.Event{}, SyncStatus: models.SyncStatusUnsynced}
	seed(t, f.local, note)

	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, n models.SmartNote) (models.SmartNote, error) {
			assert.Equal(t, models.SyncStatusSyncing, n.SyncStatus)
			assert.Equal(t, models.SyncStatusSyncing, mustGet(t, f.local, "a").SyncStatus)
			return n, nil
		})

	require.NoError(t, f.svc.PersistRemote(context.Background(), note))

	got := mustGet(t, f.local, "a")
	assert.Equal(t, models.SyncStatusSynced, got.SyncStatus)
	assert.False(t, got.Pending)
}

func TestPersistRemote_ClearsPendingAndEmits(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	note := models.SmartNote{ID: "a", Ts: 1, Pending: true, SyncStatus: models.SyncStatusUnsynced}
	seed(t, f.local, note)
	emits := emitCounter(f.notifier)

	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, n models.SmartNote) (models.SmartNote, error) {
			return n, nil
		})

	require.NoError(t, f.svc.PersistRemote(context.Background(), note))

	got := mustGet(t, f.local, "a")
	assert.False(t, got.Pending)
	assert.Equal(t, models.SyncStatusSynced, got.SyncStatus)
	assert.Equal(t, int64(1), emits.Load())
}

func TestPersistRemote_ResolvesPendingAttachments(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	note := models.SmartNote{
		ID:          "a",
		Ts:          1,
		Events:      []models.Event{},
		Attachments: []models.Attachment{{ID: "img", URL: "data:image/png;base64,iVBORw0KGgo="}},
		SyncStatus:  models.SyncStatusUnsynced,
	}
	seed(t, f.local, note)
	emits := emitCounter(f.notifier)

	resolved := models.Attachment{ID: "img", URL: "https://cdn.example/user-1/img.png", StoragePath: "user-1/img.png"}
	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, n models.SmartNote) (models.SmartNote, error) {
			assert.True(t, n.HasPendingUpload())
			out := n.Clone()
			out.Attachments = []models.Attachment{resolved}
			return out, nil
		})

	require.NoError(t, f.svc.PersistRemote(context.Background(), note))

	got := mustGet(t, f.local, "a")
	if diff := cmp.Diff([]models.Attachment{resolved}, got.Attachments); diff != "" {
		t.Errorf("attachments mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, got.HasPendingUpload())
	assert.Equal(t, int64(1), emits.Load(), "one notification after the write-back")
}

func TestPersistRemote_NoPendingUploadKeepsLocalAttachments(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	attachments := []models.Attachment{{ID: "img", URL: "https://cdn/img.png", StoragePath: "u/img.png"}}
	note := models.SmartNote{ID: "a", Ts: 1, Attachments: attachments, SyncStatus: models.SyncStatusUnsynced}
	seed(t, f.local, note)
	emits := emitCounter(f.notifier)

	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).Return(models.SmartNote{ID: "a"}, nil)

	require.NoError(t, f.svc.PersistRemote(context.Background(), note))

	assert.Equal(t, attachments, mustGet(t, f.local, "a").Attachments)
	assert.Zero(t, emits.Load())
}

func TestPersistRemote_FailureMarksSyncFailed(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	note := models.SmartNote{ID: "a", Ts: 1, Pending: true, SyncStatus: models.SyncStatusUnsynced}
	seed(t, f.local, note)
	emits := emitCounter(f.notifier)

	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).Return(models.SmartNote{}, adapter.ErrBadGateway)

	err := f.svc.PersistRemote(context.Background(), note)
	assert.ErrorIs(t, err, adapter.ErrBadGateway)

	got := mustGet(t, f.local, "a")
	assert.Equal(t, models.SyncStatusFailed, got.SyncStatus)
	assert.True(t, got.Pending, "a failed push leaves pending alone")
	assert.Zero(t, emits.Load())
}

func TestPersistRemote_RetryFromFailed(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	note := models.SmartNote{ID: "a", Ts: 1, SyncStatus: models.SyncStatusFailed}
	seed(t, f.local, note)

	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, n models.SmartNote) (models.SmartNote, error) {
			return n, nil
		})

	require.NoError(t, f.svc.PersistRemote(context.Background(), note))
	assert.Equal(t, models.SyncStatusSynced, mustGet(t, f.local, "a").SyncStatus)
}

func TestPersistRemote_NoIdentity(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		err      error
	}{
		{name: "signed out", identity: ""},
		{name: "resolver error", err: errors.New("session endpoint down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSyncFixture(t)
			f.session.EXPECT().CurrentIdentity(gomock.Any()).Return(tt.identity, tt.err)
			note := models.SmartNote{ID: "a", Ts: 1, SyncStatus: models.SyncStatusUnsynced}
			seed(t, f.local, note)

			require.NoError(t, f.svc.PersistRemote(context.Background(), note))
			assert.Equal(t, models.SyncStatusUnsynced, mustGet(t, f.local, "a").SyncStatus)
		})
	}
}

func TestPersistRemote_RemoteDisabledRestoresStatus(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	note := models.SmartNote{ID: "a", Ts: 1, SyncStatus: models.SyncStatusUnsynced}
	seed(t, f.local, note)

	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).Return(models.SmartNote{}, adapter.ErrRemoteDisabled)

	require.NoError(t, f.svc.PersistRemote(context.Background(), note))
	assert.Equal(t, models.SyncStatusUnsynced, mustGet(t, f.local, "a").SyncStatus)
}

func TestPersistRemote_DeletedBeforePush(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()

	require.NoError(t, f.svc.PersistRemote(context.Background(), models.SmartNote{ID: "gone"}))
	assert.Empty(t, localIDs(t, f.local))
}

func TestPersistRemote_DeletedDuringPush(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	note := models.SmartNote{ID: "a", Ts: 1, SyncStatus: models.SyncStatusUnsynced}
	seed(t, f.local, note)

	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, n models.SmartNote) (models.SmartNote, error) {
			_, _, err := f.local.remove(ctx, "a")
			require.NoError(t, err)
			return n, nil
		})

	require.NoError(t, f.svc.PersistRemote(context.Background(), note))
	assert.Empty(t, localIDs(t, f.local), "the bridge never recreates a deleted note")
}

func TestPersistRemote_EditedDuringPush(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	note := models.SmartNote{ID: "a", Ts: 1, Content: "v1", SyncStatus: models.SyncStatusUnsynced}
	seed(t, f.local, note)

	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, n models.SmartNote) (models.SmartNote, error) {
			edited := n.Clone()
			edited.Content = "v2"
			edited.SyncStatus = models.SyncStatusUnsynced
			require.NoError(t, f.local.put(ctx, edited))
			return n, nil
		})

	require.NoError(t, f.svc.PersistRemote(context.Background(), note))

	got := mustGet(t, f.local, "a")
	assert.Equal(t, "v2", got.Content)
	assert.Equal(t, models.SyncStatusUnsynced, got.SyncStatus, "the newer edit still needs its own push")
}

func TestPersistRemote_AlreadySyncedIsSkipped(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	note := models.SmartNote{ID: "a", Ts: 1, SyncStatus: models.SyncStatusSynced}
	seed(t, f.local, note)

	require.NoError(t, f.svc.PersistRemote(context.Background(), note))
}

func TestPersistRemote_SingleFlightPerNote(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	note := models.SmartNote{ID: "a", Ts: 1, SyncStatus: models.SyncStatusUnsynced}
	seed(t, f.local, note)

	started := make(chan struct{})
	release := make(chan struct{})
	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, n models.SmartNote) (models.SmartNote, error) {
			close(started)
			<-release
			return n, nil
		}).Times(1)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, f.svc.PersistRemote(context.Background(), note))
	}()
	<-started
	go func() {
		defer wg.Done()
		assert.NoError(t, f.svc.PersistRemote(context.Background(), note))
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, models.SyncStatusSynced, mustGet(t, f.local, "a").SyncStatus)
}

// ── SyncFromRemote ──────────────────────────────────────────────────────────

func TestSyncFromRemote_Reconciles(t *testing.T) {
	tests := []struct {
		name    string
		c       models.SmartNote
		wantIDs []string
	}{
		{
			name:    "confirmed local note missing remotely is removed",
			c:       models.SmartNote{ID: "C", Ts: 3, SyncStatus: models.SyncStatusSynced},
			wantIDs: []string{"B", "A"},
		},
		{
			name:    "note without status follows pending=false",
			c:       models.SmartNote{ID: "C", Ts: 3},
			wantIDs: []string{"B", "A"},
		},
		{
			name:    "pending note survives",
			c:       models.SmartNote{ID: "C", Ts: 3, Pending: true},
			wantIDs: []string{"C", "B", "A"},
		},
		{
			name:    "unsynced note survives",
			c:       models.SmartNote{ID: "C", Ts: 3, SyncStatus: models.SyncStatusUnsynced},
			wantIDs: []string{"C", "B", "A"},
		},
		{
			name:    "failed push survives",
			c:       models.SmartNote{ID: "C", Ts: 3, SyncStatus: models.SyncStatusFailed},
			wantIDs: []string{"C", "B", "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSyncFixture(t)
			f.signedIn()
			seed(t, f.local,
				models.SmartNote{ID: "A", Ts: 1, SyncStatus: models.SyncStatusSynced},
				models.SmartNote{ID: "B", Ts: 2, SyncStatus: models.SyncStatusSynced},
				tt.c,
			)
			emits := emitCounter(f.notifier)

			f.remote.EXPECT().FetchAll(gomock.Any(), testIdentity).Return([]models.SmartNote{
				{ID: "A", Ts: 1, Events: []models.Event{}},
				{ID: "B", Ts: 2, Events: []models.Event{}},
			}, nil)

			require.NoError(t, f.svc.SyncFromRemote(context.Background()))

			assert.Equal(t, tt.wantIDs, localIDs(t, f.local))
			assert.Equal(t, int64(1), emits.Load(), "exactly one notification per pass")
		})
	}
}

func TestSyncFromRemote_RemoteIsAuthoritativeForConfirmedNotes(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	seed(t, f.local,
		models.SmartNote{ID: "A", Ts: 1, Content: "local", SyncStatus: models.SyncStatusSynced},
		models.SmartNote{ID: "B", Ts: 2, Content: "local edit", SyncStatus: models.SyncStatusUnsynced},
	)

	f.remote.EXPECT().FetchAll(gomock.Any(), testIdentity).Return([]models.SmartNote{
		{ID: "A", Ts: 1, Content: "remote", Pending: true},
		{ID: "B", Ts: 2, Content: "remote"},
		{ID: "D", Ts: 4, Content: "new on remote"},
	}, nil)

	require.NoError(t, f.svc.SyncFromRemote(context.Background()))

	a := mustGet(t, f.local, "A")
	assert.Equal(t, "remote", a.Content)
	assert.False(t, a.Pending)
	assert.Equal(t, models.SyncStatusSynced, a.SyncStatus)
	assert.NotNil(t, a.Events)

	assert.Equal(t, "local edit", mustGet(t, f.local, "B").Content, "unconfirmed local write is kept")
	assert.Equal(t, models.SyncStatusSynced, mustGet(t, f.local, "D").SyncStatus)
}

func TestSyncFromRemote_FetchError(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	seed(t, f.local, models.SmartNote{ID: "A", Ts: 1, SyncStatus: models.SyncStatusSynced})
	emits := emitCounter(f.notifier)

	f.remote.EXPECT().FetchAll(gomock.Any(), testIdentity).Return(nil, adapter.ErrInternalServerError)

	err := f.svc.SyncFromRemote(context.Background())
	assert.ErrorIs(t, err, adapter.ErrInternalServerError)
	assert.Equal(t, []string{"A"}, localIDs(t, f.local))
	assert.Zero(t, emits.Load())
}

func TestSyncFromRemote_Skipped(t *testing.T) {
	t.Run("no identity", func(t *testing.T) {
		f := newSyncFixture(t)
		f.session.EXPECT().CurrentIdentity(gomock.Any()).Return("", nil)
		emits := emitCounter(f.notifier)

		require.NoError(t, f.svc.SyncFromRemote(context.Background()))
		assert.Zero(t, emits.Load())
	})

	t.Run("remote disabled", func(t *testing.T) {
		f := newSyncFixture(t)
		f.signedIn()
		seed(t, f.local, models.SmartNote{ID: "A", Ts: 1, SyncStatus: models.SyncStatusSynced})
		emits := emitCounter(f.notifier)

		f.remote.EXPECT().FetchAll(gomock.Any(), testIdentity).Return(nil, adapter.ErrRemoteDisabled)

		require.NoError(t, f.svc.SyncFromRemote(context.Background()))
		assert.Equal(t, []string{"A"}, localIDs(t, f.local), "no sweep while the remote is disabled")
		assert.Zero(t, emits.Load())
	})
}

func TestSyncFromRemote_EmptyRemoteSweepsConfirmed(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	seed(t, f.local,
		models.SmartNote{ID: "A", Ts: 1, SyncStatus: models.SyncStatusSynced},
		models.SmartNote{ID: "B", Ts: 2, Pending: true},
	)

	f.remote.EXPECT().FetchAll(gomock.Any(), testIdentity).Return([]models.SmartNote{}, nil)

	require.NoError(t, f.svc.SyncFromRemote(context.Background()))
	assert.Equal(t, []string{"B"}, localIDs(t, f.local))
}

func TestSyncFromRemote_NeverPushedNoteSurvivesSweep(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	seed(t, f.local, models.SmartNote{ID: "fresh", Ts: 1, Pending: false, SyncStatus: models.SyncStatusUnsynced})

	f.remote.EXPECT().FetchAll(gomock.Any(), testIdentity).Return([]models.SmartNote{}, nil)

	require.NoError(t, f.svc.SyncFromRemote(context.Background()))
	assert.Equal(t, []string{"fresh"}, localIDs(t, f.local))
	assert.Equal(t, models.SyncStatusUnsynced, mustGet(t, f.local, "fresh").SyncStatus)
}

// ── RemoveRemote ────────────────────────────────────────────────────────────

func TestRemoveRemote(t *testing.T) {
	note := models.SmartNote{ID: "a", Ts: 1}

	t.Run("deletes with identity", func(t *testing.T) {
		f := newSyncFixture(t)
		f.signedIn()
		f.remote.EXPECT().Delete(gomock.Any(), testIdentity, note).Return(nil)

		assert.NoError(t, f.svc.RemoveRemote(context.Background(), note))
	})

	t.Run("remote error is returned for logging", func(t *testing.T) {
		f := newSyncFixture(t)
		f.signedIn()
		f.remote.EXPECT().Delete(gomock.Any(), testIdentity, note).Return(adapter.ErrForbidden)

		assert.ErrorIs(t, f.svc.RemoveRemote(context.Background(), note), adapter.ErrForbidden)
	})

	t.Run("remote disabled", func(t *testing.T) {
		f := newSyncFixture(t)
		f.signedIn()
		f.remote.EXPECT().Delete(gomock.Any(), testIdentity, note).Return(adapter.ErrRemoteDisabled)

		assert.NoError(t, f.svc.RemoveRemote(context.Background(), note))
	})

	t.Run("no identity", func(t *testing.T) {
		f := newSyncFixture(t)
		f.session.EXPECT().CurrentIdentity(gomock.Any()).Return("", nil)

		assert.NoError(t, f.svc.RemoveRemote(context.Background(), note))
	})
}

// ── RetryFailed ─────────────────────────────────────────────────────────────

func TestRetryFailed_PushesUnconfirmedNotes(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	seed(t, f.local,
		models.SmartNote{ID: "unsynced", Ts: 1, SyncStatus: models.SyncStatusUnsynced},
		models.SmartNote{ID: "failed", Ts: 2, SyncStatus: models.SyncStatusFailed},
		models.SmartNote{ID: "stale", Ts: 3, SyncStatus: models.SyncStatusSyncing},
		models.SmartNote{ID: "synced", Ts: 4, SyncStatus: models.SyncStatusSynced},
		models.SmartNote{ID: "legacy", Ts: 5},
	)

	var mu sync.Mutex
	var pushed []string
	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, n models.SmartNote) (models.SmartNote, error) {
			mu.Lock()
			pushed = append(pushed, n.ID)
			mu.Unlock()
			return n, nil
		}).Times(3)

	require.NoError(t, f.svc.RetryFailed(context.Background()))

	assert.ElementsMatch(t, []string{"unsynced", "failed", "stale"}, pushed)
	for _, id := range []string{"unsynced", "failed", "stale"} {
		assert.Equal(t, models.SyncStatusSynced, mustGet(t, f.local, id).SyncStatus, id)
	}
	assert.Equal(t, models.SyncStatusUnknown, mustGet(t, f.local, "legacy").SyncStatus)
}

func TestRetryFailed_CollectsErrors(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	seed(t, f.local,
		models.SmartNote{ID: "a", Ts: 1, SyncStatus: models.SyncStatusFailed},
		models.SmartNote{ID: "b", Ts: 2, SyncStatus: models.SyncStatusFailed},
	)

	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).
		Return(models.SmartNote{}, adapter.ErrBadGateway).Times(2)

	err := f.svc.RetryFailed(context.Background())
	assert.ErrorIs(t, err, adapter.ErrBadGateway)
	assert.Equal(t, models.SyncStatusFailed, mustGet(t, f.local, "a").SyncStatus)
}

func TestRetryFailed_StopsWhenRemoteDisabled(t *testing.T) {
	f := newSyncFixture(t)
	f.signedIn()
	seed(t, f.local,
		models.SmartNote{ID: "a", Ts: 1, SyncStatus: models.SyncStatusUnsynced},
		models.SmartNote{ID: "b", Ts: 2, SyncStatus: models.SyncStatusUnsynced},
	)

	f.remote.EXPECT().Upsert(gomock.Any(), testIdentity, gomock.Any()).
		Return(models.SmartNote{}, adapter.ErrRemoteDisabled).Times(1)

	require.NoError(t, f.svc.RetryFailed(context.Background()))
	assert.Equal(t, models.SyncStatusUnsynced, mustGet(t, f.local, "a").SyncStatus)
	assert.Equal(t, models.SyncStatusUnsynced, mustGet(t, f.local, "b").SyncStatus)
}
