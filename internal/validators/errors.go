// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidNoteID       = errors.New("invalid note id")
	ErrInvalidTimestamp    = errors.New("invalid note timestamp")
	ErrUnknownEventKind    = errors.New("unknown event kind")
	ErrInvalidConfidence   = errors.New("event confidence must be within [0,1]")
	ErrNegativeAmount      = errors.New("event amount cannot be negative")
	ErrInvalidPercent      = errors.New("body fat percent must be within [0,100]")
	ErrEmptySport          = errors.New("workout sport is required")
	ErrInvalidAttachment   = errors.New("attachment id and url are required")
	ErrDuplicateAttachment = errors.New("duplicate attachment id")
)
