// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/smart-notes/internal/config"
	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/internal/utils"
	"github.com/MKhiriev/smart-notes/models"
)

// IdentityHeader carries the resolved identity on every remote request.
const IdentityHeader = "X-User-ID"

const (
	notesPath = "/api/notes"
	notePath  = "/api/notes/{id}"
)

type httpNoteService struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPNoteService constructs an HTTP/REST implementation of [NoteService].
// It normalises the base URL from adapterCfg.HTTPAddress and configures the
// request timeout. When sessionCfg.Token is set it is sent as a bearer token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPNoteService(adapterCfg config.ClientAdapter, sessionCfg config.ClientSession, log *logger.Logger) (NoteService, error) {
	client, err := utils.NewBaseURLClient(adapterCfg.HTTPAddress, adapterCfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpNoteService{client: client, token: sessionCfg.Token, logger: log}, nil
}

// NewNoteService returns the HTTP note service when a remote address is
// configured and [DisabledNoteService] otherwise.
func NewNoteService(adapterCfg config.ClientAdapter, sessionCfg config.ClientSession, log *logger.Logger) (NoteService, error) {
	if adapterCfg.HTTPAddress == "" {
		log.Info().Msg("no remote address configured, remote note service disabled")
		return DisabledNoteService{}, nil
	}

	return NewHTTPNoteService(adapterCfg, sessionCfg, log)
}

// Upsert implements [NoteService] with PUT /api/notes/{id}. The server
// answers with the stored note, whose attachments are authoritative.
func (h *httpNoteService) Upsert(ctx context.Context, identity string, note models.SmartNote) (models.SmartNote, error) {
	var stored models.SmartNote

	resp, err := h.request(ctx, identity).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", note.ID).
		SetBody(note).
		SetResult(&stored).
		Put(notePath)
	if err != nil {
		return models.SmartNote{}, fmt.Errorf("upsert request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SmartNote{}, err
	}

	if stored.ID == "" {
		// some servers answer 204; keep what was sent
		return note, nil
	}

	return stored, nil
}

// Delete implements [NoteService] with DELETE /api/notes/{id}. The note is
// sent as the body so the server can drop its attachments. A note already
// missing remotely counts as deleted.
func (h *httpNoteService) Delete(ctx context.Context, identity string, note models.SmartNote) error {
	resp, err := h.request(ctx, identity).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", note.ID).
		SetBody(note).
		Delete(notePath)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	return mapHTTPError(resp, http.StatusNotFound)
}

// FetchAll implements [NoteService] with GET /api/notes.
func (h *httpNoteService) FetchAll(ctx context.Context, identity string) ([]models.SmartNote, error) {
	var notes []models.SmartNote

	resp, err := h.request(ctx, identity).
		SetResult(&notes).
		Get(notesPath)
	if err != nil {
		return nil, fmt.Errorf("fetch all request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []models.SmartNote{}
	}

	return notes, nil
}

// FetchPage implements [NoteService] with GET /api/notes?limit=&cursor=.
func (h *httpNoteService) FetchPage(ctx context.Context, identity string, limit int, cursor *int64) ([]models.SmartNote, error) {
	var notes []models.SmartNote

	req := h.request(ctx, identity).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&notes)
	if cursor != nil {
		req.SetQueryParam("cursor", strconv.FormatInt(*cursor, 10))
	}

	resp, err := req.Get(notesPath)
	if err != nil {
		return nil, fmt.Errorf("fetch page request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []models.SmartNote{}
	}

	return notes, nil
}

func (h *httpNoteService) request(ctx context.Context, identity string) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader(IdentityHeader, identity)
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req
}
