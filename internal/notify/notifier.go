// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify implements the in-process change signal of the note store.
//
// Subscribers are plain callbacks without payload: a notification only says
// "the collection changed, re-read it". Callbacks run synchronously on the
// emitting goroutine, in registration order.
package notify

import (
	"sync"

	"github.com/MKhiriev/smart-notes/internal/logger"
)

// Notifier is a registry of change callbacks. The zero value is not usable;
// construct it with [NewNotifier]. It is safe for concurrent use.
type Notifier struct {
	mu          sync.RWMutex
	nextID      uint64
	subscribers []subscriber

	logger *logger.Logger
}

type subscriber struct {
	id uint64
	cb func()
}

// NewNotifier returns an empty notifier. Panics raised by callbacks are
// reported to log.
func NewNotifier(log *logger.Logger) *Notifier {
	return &Notifier{logger: log}
}

// Subscribe registers cb and returns a function removing it. Calling the
// returned function more than once has no further effect.
func (n *Notifier) Subscribe(cb func()) (unsubscribe func()) {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.subscribers = append(n.subscribers, subscriber{id: id, cb: cb})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(id) })
	}
}

// Emit calls every callback registered at the moment of the call. Callbacks
// subscribed or unsubscribed while Emit runs don't affect the current pass.
// A panicking callback is logged and skipped; the remaining ones still run.
func (n *Notifier) Emit() {
	n.mu.RLock()
	snapshot := make([]subscriber, len(n.subscribers))
	copy(snapshot, n.subscribers)
	n.mu.RUnlock()

	for _, s := range snapshot {
		n.call(s)
	}
}

// Len returns the number of registered callbacks.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers)
}

func (n *Notifier) call(s subscriber) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error().
				Str("func", "Notifier.Emit").
				Uint64("subscriber_id", s.id).
				Interface("panic", r).
				Msg("change subscriber panicked")
		}
	}()

	s.cb()
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, s := range n.subscribers {
		if s.id == id {
			n.subscribers = append(n.subscribers[:i:i], n.subscribers[i+1:]...)
			return
		}
	}
}
