// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/smart-notes/models"

// normalizeNote is the stored shape of a note on every backend: Events is
// never nil and Attachments is nil when there are none.
func normalizeNote(note models.SmartNote) models.SmartNote {
	n := note.Clone()
	if n.Events == nil {
		n.Events = []models.Event{}
	}
	if len(n.Attachments) == 0 {
		n.Attachments = nil
	}
	return n
}
