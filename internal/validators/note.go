// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"math"

	"github.com/MKhiriev/smart-notes/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the note identifier.
	FieldID = "id"

	// FieldTs targets the note creation timestamp.
	FieldTs = "ts"

	// FieldEvents targets every event of a note or patch.
	FieldEvents = "events"

	// FieldAttachments targets every attachment of a note or patch.
	FieldAttachments = "attachments"
)

type NoteValidator struct {
}

func NewNoteValidator() Validator {
	return &NoteValidator{}
}

func (v *NoteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SmartNote:
		return v.validateNote(ctx, value, fields...)
	case *models.SmartNote:
		return v.validateNote(ctx, *value, fields...)

	case models.NotePatch:
		return v.validatePatch(ctx, value, fields...)
	case *models.NotePatch:
		return v.validatePatch(ctx, *value, fields...)

	case models.Event:
		return validateEvent(value)
	case *models.Event:
		return validateEvent(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *NoteValidator) validateNote(_ context.Context, note models.SmartNote, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldTs, FieldEvents, FieldAttachments}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if note.ID == "" {
				return ErrInvalidNoteID
			}
		case FieldTs:
			if note.Ts < 0 {
				return ErrInvalidTimestamp
			}
		case FieldEvents:
			if err := validateEvents(note.Events); err != nil {
				return err
			}
		case FieldAttachments:
			if err := validateAttachments(note.Attachments); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePatch checks only the fields the patch actually sets.
func (v *NoteValidator) validatePatch(_ context.Context, patch models.NotePatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTs, FieldEvents, FieldAttachments}
	}

	for _, f := range fields {
		switch f {
		case FieldTs:
			if patch.Ts != nil && *patch.Ts < 0 {
				return ErrInvalidTimestamp
			}
		case FieldEvents:
			if patch.Events != nil {
				if err := validateEvents(*patch.Events); err != nil {
					return err
				}
			}
		case FieldAttachments:
			if patch.Attachments != nil {
				if err := validateAttachments(*patch.Attachments); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateEvents(events []models.Event) error {
	for i, e := range events {
		if err := validateEvent(e); err != nil {
			return fmt.Errorf("validation error at event %d: %w", i, err)
		}
	}
	return nil
}

func validateEvent(e models.Event) error {
	if !e.Kind.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownEventKind, e.Kind)
	}
	if math.IsNaN(e.Confidence) || e.Confidence < 0 || e.Confidence > 1 {
		return ErrInvalidConfidence
	}

	switch e.Kind {
	case models.EventDrink:
		return nonNegative(e.VolumeMl)
	case models.EventProtein:
		return nonNegative(e.Grams)
	case models.EventPushups:
		return nonNegative(float64(e.Count))
	case models.EventWorkout:
		if e.Sport == "" {
			return ErrEmptySport
		}
	case models.EventWeight:
		return nonNegative(e.Kg)
	case models.EventBodyFat:
		if math.IsNaN(e.Percent) || e.Percent < 0 || e.Percent > 100 {
			return ErrInvalidPercent
		}
	case models.EventFood:
		if e.ProteinG != nil {
			return nonNegative(*e.ProteinG)
		}
	}

	return nil
}

func nonNegative(v float64) error {
	if math.IsNaN(v) || v < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func validateAttachments(attachments []models.Attachment) error {
	seen := make(map[string]struct{}, len(attachments))
	for i, a := range attachments {
		if a.ID == "" || a.URL == "" {
			return fmt.Errorf("validation error at attachment %d: %w", i, ErrInvalidAttachment)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("validation error at attachment %d: %w", i, ErrDuplicateAttachment)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}
