// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/internal/service"
)

// DefaultSyncInterval is used when the configured interval is not positive.
const DefaultSyncInterval = 5 * time.Minute

// SyncWorker reconciles the local store with the remote one and retries
// unconfirmed pushes, once on start and then every interval.
type SyncWorker struct {
	sync     service.SyncService
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

func NewSyncWorker(syncService service.SyncService, interval time.Duration, log *logger.Logger) *SyncWorker {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &SyncWorker{sync: syncService, interval: interval, logger: log}
}

// Start stops a previously started run before launching a new one.
func (w *SyncWorker) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		w.runOnce(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				w.runOnce(jobCtx)
			}
		}
	}()
}

func (w *SyncWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *SyncWorker) runOnce(ctx context.Context) {
	if err := w.sync.SyncFromRemote(ctx); err != nil {
		w.logger.Warn().Err(err).Str("func", "SyncWorker.runOnce").Msg("sync from remote failed")
	}
	if ctx.Err() != nil {
		return
	}
	if err := w.sync.RetryFailed(ctx); err != nil {
		w.logger.Warn().Err(err).Str("func", "SyncWorker.runOnce").Msg("retrying unconfirmed pushes failed")
	}
}
