// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string. Empty disables the indexed backend.
	DSN string
}

// ClientKV contains the fallback key-value store settings.
type ClientKV struct {
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
	// KV holds the fallback key-value store settings.
	KV ClientKV
}

// ClientAdapter holds network settings used by the remote transport layer.
type ClientAdapter struct {
	// HTTPAddress is the remote note service address. Empty disables remote.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientSession holds identity resolution settings.
type ClientSession struct {
	URL          string
	Token        string
	TokenSignKey string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the sync worker runs.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Storage ClientStorage
	Adapter ClientAdapter
	Session ClientSession
	Workers ClientWorkers

	// Args holds the positional arguments left after flag parsing
	// (the CLI command and its operands).
	Args []string
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration. args are the command-line arguments
// without the program name.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, rest, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
			KV: ClientKV{
				Dir:           cfg.Storage.KV.Dir,
				RedisAddr:     cfg.Storage.KV.RedisAddr,
				RedisPassword: cfg.Storage.KV.RedisPassword,
				RedisDB:       cfg.Storage.KV.RedisDB,
			},
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Session: ClientSession{
			URL:          cfg.Session.URL,
			Token:        cfg.Session.Token,
			TokenSignKey: cfg.Session.TokenSignKey,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Args:    rest,
	}

	return clientCfg, clientCfg.validate()
}
