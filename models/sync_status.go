// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncStatus is the remote push state of a single note.
//
// Allowed transitions:
//
//	""          -> unsynced | syncing | synced
//	unsynced    -> syncing
//	syncing     -> synced | sync_failed | unsynced (local edit mid-push)
//	sync_failed -> syncing (retry) | unsynced (local edit)
//	synced      -> unsynced (local edit) | syncing (forced re-push)
//
// The zero value means the status was never recorded (e.g. data written by
// an older client); such notes follow the plain Pending rule and become
// synced once reconciliation stores their remote version.
type SyncStatus string

const (
	SyncStatusUnknown  SyncStatus = ""
	SyncStatusUnsynced SyncStatus = "unsynced"
	SyncStatusSyncing  SyncStatus = "syncing"
	SyncStatusSynced   SyncStatus = "synced"
	SyncStatusFailed   SyncStatus = "sync_failed"
)

var syncTransitions = map[SyncStatus][]SyncStatus{
	SyncStatusUnknown:  {SyncStatusUnsynced, SyncStatusSyncing, SyncStatusSynced},
	SyncStatusUnsynced: {SyncStatusSyncing},
	SyncStatusSyncing:  {SyncStatusSynced, SyncStatusFailed, SyncStatusUnsynced},
	SyncStatusFailed:   {SyncStatusSyncing, SyncStatusUnsynced},
	SyncStatusSynced:   {SyncStatusUnsynced, SyncStatusSyncing},
}

// CanTransition reports whether a note may move from s to next.
// Staying in the same state is always allowed.
func (s SyncStatus) CanTransition(next SyncStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range syncTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AwaitingConfirmation reports whether the latest local write of the note
// has not been confirmed by the remote yet.
func (s SyncStatus) AwaitingConfirmation() bool {
	switch s {
	case SyncStatusUnsynced, SyncStatusSyncing, SyncStatusFailed:
		return true
	default:
		return false
	}
}

// NeedsPush reports whether the note should be (re)sent to the remote.
func (s SyncStatus) NeedsPush() bool {
	return s == SyncStatusUnsynced || s == SyncStatusFailed
}
