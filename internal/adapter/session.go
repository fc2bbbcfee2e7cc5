// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/smart-notes/internal/config"
	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/internal/utils"
)

// NewSessionResolver picks the identity source from cfg: the session lookup
// endpoint when URL is set, the bearer token when Token is set, and a
// resolver that never yields an identity otherwise.
func NewSessionResolver(cfg config.ClientSession, adapterCfg config.ClientAdapter, log *logger.Logger) (SessionResolver, error) {
	switch {
	case cfg.URL != "":
		return NewHTTPSessionResolver(cfg, adapterCfg, log)
	case cfg.Token != "":
		return NewTokenSessionResolver(cfg.Token, cfg.TokenSignKey), nil
	default:
		log.Info().Msg("no session source configured, working offline")
		return NewStaticSessionResolver(""), nil
	}
}

// sessionResponse is the body of the session lookup endpoint.
type sessionResponse struct {
	User *struct {
		ID string `json:"id"`
	} `json:"user"`
}

type httpSessionResolver struct {
	client *utils.HTTPClient
	url    string
	token  string

	logger *logger.Logger
}

// NewHTTPSessionResolver returns a [SessionResolver] that calls GET cfg.URL
// and reads the identity from {"user":{"id":...}}. An unauthenticated answer
// (401, 403 or a null user) yields an empty identity.
func NewHTTPSessionResolver(cfg config.ClientSession, adapterCfg config.ClientAdapter, log *logger.Logger) (SessionResolver, error) {
	if !strings.Contains(cfg.URL, "://") {
		return nil, fmt.Errorf("session url must be absolute: %q", cfg.URL)
	}

	client := utils.NewHTTPClient()
	if adapterCfg.RequestTimeout > 0 {
		client.SetTimeout(adapterCfg.RequestTimeout)
	}

	return &httpSessionResolver{client: client, url: cfg.URL, token: cfg.Token, logger: log}, nil
}

func (h *httpSessionResolver) CurrentIdentity(ctx context.Context) (string, error) {
	var session sessionResponse

	req := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&session)
	if h.token != "" {
		req.SetAuthToken(h.token)
	}

	resp, err := req.Get(h.url)
	if err != nil {
		return "", fmt.Errorf("session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) {
			return "", nil
		}
		return "", err
	}

	if session.User == nil {
		return "", nil
	}

	return session.User.ID, nil
}

type tokenSessionResolver struct {
	token   string
	signKey string
}

// NewTokenSessionResolver returns a [SessionResolver] reading the identity
// from the subject claim of token. The signature and expiry are verified
// when signKey is set.
func NewTokenSessionResolver(token, signKey string) SessionResolver {
	return &tokenSessionResolver{token: token, signKey: signKey}
}

func (t *tokenSessionResolver) CurrentIdentity(context.Context) (string, error) {
	raw, err := utils.ParseBearerToken(t.token)
	if err != nil {
		return "", err
	}

	return utils.ParseSubject(raw, t.signKey)
}

type staticSessionResolver struct {
	identity string
}

// NewStaticSessionResolver returns a [SessionResolver] that always yields
// identity. An empty identity keeps the client offline.
func NewStaticSessionResolver(identity string) SessionResolver {
	return staticSessionResolver{identity: identity}
}

func (s staticSessionResolver) CurrentIdentity(context.Context) (string, error) {
	return s.identity, nil
}
