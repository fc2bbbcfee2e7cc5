// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"

	"github.com/MKhiriev/smart-notes/models"
)

// DisabledNoteService stands in for the remote while none is configured.
// Every call fails with [ErrRemoteDisabled] and has no effect.
type DisabledNoteService struct{}

func (DisabledNoteService) Upsert(context.Context, string, models.SmartNote) (models.SmartNote, error) {
	return models.SmartNote{}, ErrRemoteDisabled
}

func (DisabledNoteService) Delete(context.Context, string, models.SmartNote) error {
	return ErrRemoteDisabled
}

func (DisabledNoteService) FetchAll(context.Context, string) ([]models.SmartNote, error) {
	return nil, ErrRemoteDisabled
}

func (DisabledNoteService) FetchPage(context.Context, string, int, *int64) ([]models.SmartNote, error) {
	return nil, ErrRemoteDisabled
}
