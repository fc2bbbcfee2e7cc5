// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"errors"

	"github.com/MKhiriev/smart-notes/internal/app"
)

var (
	ErrUnknownCommand  = errors.New(app.MsgUnknownCommand)
	ErrMissingArgument = errors.New(app.MsgMissingArgument)
	ErrInvalidData     = errors.New(app.MsgInvalidDataProvided)
	ErrNoteNotFound    = errors.New(app.MsgNoteNotFound)
	ErrNothingToUpdate = errors.New(app.MsgNothingToUpdate)
)
