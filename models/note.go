// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// dataURIScheme prefixes attachment URLs that still carry inline content.
const dataURIScheme = "data:"

// SmartNote is the unit of local persistence: a user-authored, timestamped
// record carrying structured events and optional media attachments.
type SmartNote struct {
	// ID is an opaque unique identifier, immutable once created.
	ID string `json:"id"`

	// Ts is the creation time in Unix milliseconds. It is the only ordering
	// and range-query key; it need not be unique.
	Ts int64 `json:"ts"`

	// Content is the free-form text the events were extracted from.
	Content string `json:"content,omitempty"`

	// Events is the ordered list of extracted events. May be empty.
	Events []Event `json:"events"`

	// Attachments is the optional ordered list of media attachments.
	Attachments []Attachment `json:"attachments,omitempty"`

	// Pending marks a note whose remote persistence is not yet confirmed.
	// Pending notes are excluded from aggregates and survive reconciliation.
	Pending bool `json:"pending"`

	// SyncStatus tracks the remote push lifecycle of the note.
	SyncStatus SyncStatus `json:"syncStatus,omitempty"`
}

// Attachment is a media item attached to a [SmartNote].
type Attachment struct {
	ID string `json:"id"`

	// URL is either an inline data URI (not yet uploaded) or a remote URL.
	URL string `json:"url"`

	// StoragePath is set once the attachment has been durably uploaded.
	StoragePath string `json:"storagePath,omitempty"`
}

// IsPendingUpload reports whether the attachment still carries inline data
// and has not been uploaded.
func (a Attachment) IsPendingUpload() bool {
	return strings.HasPrefix(a.URL, dataURIScheme) && a.StoragePath == ""
}

// HasPendingUpload reports whether any attachment of the note is pending upload.
func (n SmartNote) HasPendingUpload() bool {
	for _, a := range n.Attachments {
		if a.IsPendingUpload() {
			return true
		}
	}
	return false
}

// Clone returns a copy of the note that shares no slices with n.
func (n SmartNote) Clone() SmartNote {
	c := n
	if n.Events != nil {
		c.Events = make([]Event, len(n.Events))
		for i, e := range n.Events {
			if e.ProteinG != nil {
				v := *e.ProteinG
				e.ProteinG = &v
			}
			c.Events[i] = e
		}
	}
	if n.Attachments != nil {
		c.Attachments = append([]Attachment(nil), n.Attachments...)
	}
	return c
}

// NotePatch describes a shallow update of a [SmartNote]. Nil fields are left
// untouched; non-nil fields replace the stored value as a whole.
type NotePatch struct {
	Ts          *int64        `json:"ts,omitempty"`
	Content     *string       `json:"content,omitempty"`
	Events      *[]Event      `json:"events,omitempty"`
	Attachments *[]Attachment `json:"attachments,omitempty"`
	Pending     *bool         `json:"pending,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p NotePatch) IsEmpty() bool {
	return p.Ts == nil && p.Content == nil && p.Events == nil && p.Attachments == nil && p.Pending == nil
}

// Apply returns n with every non-nil field of p merged over it.
// ID and SyncStatus are never patched.
func (p NotePatch) Apply(n SmartNote) SmartNote {
	merged := n.Clone()
	if p.Ts != nil {
		merged.Ts = *p.Ts
	}
	if p.Content != nil {
		merged.Content = *p.Content
	}
	if p.Events != nil {
		merged.Events = append([]Event(nil), (*p.Events)...)
	}
	if p.Attachments != nil {
		merged.Attachments = append([]Attachment(nil), (*p.Attachments)...)
	}
	if p.Pending != nil {
		merged.Pending = *p.Pending
	}
	return merged
}

// NotePage is one page of a cursor-paginated listing.
type NotePage struct {
	Notes []SmartNote `json:"notes"`

	// NextCursor is the ts of the last returned note when more notes exist.
	NextCursor *int64 `json:"nextCursor,omitempty"`

	HasMore bool `json:"hasMore"`
}
