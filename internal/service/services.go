// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/smart-notes/internal/adapter"
	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/internal/notify"
	"github.com/MKhiriev/smart-notes/internal/store"
	"github.com/MKhiriev/smart-notes/internal/utils"
	"github.com/MKhiriev/smart-notes/internal/validators"
)

type Services struct {
	NoteService NoteService
	SyncService SyncService
}

func NewServices(notes store.NoteBackend, remote adapter.NoteService, session adapter.SessionResolver, log *logger.Logger) *Services {
	local := NewLocalStore(notes)
	notifier := notify.NewNotifier(log)
	syncSvc := NewSyncService(local, remote, session, notifier, log)

	return &Services{
		NoteService: NewNoteService(local, syncSvc, notifier, validators.NewNoteValidator(), utils.NewUUIDGenerator(), log),
		SyncService: syncSvc,
	}
}
