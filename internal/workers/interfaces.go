// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides the background jobs of the smart-notes client.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers as one.
package workers

import "context"

// Worker is a background job.
//
// Start returns immediately; the work runs on goroutines owned by the worker
// until ctx is cancelled or Stop is called. Stop blocks until those
// goroutines have exited and is safe to call on a worker that never started.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
