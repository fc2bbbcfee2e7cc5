// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the
// smart-notes client. It is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage holds the local persistence settings: the indexed SQLite
	// database and the key-value store used by the fallback backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote note service transport settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Session holds the settings used to resolve the current identity.
	Session Session `envPrefix:"SESSION_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON (comments allowed) config
	// file merged on top of env and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for both local backends.
type Storage struct {
	// DB holds the indexed database settings.
	DB DB `envPrefix:"DB_"`

	// KV holds the key-value store settings used by the fallback backend.
	KV KV `envPrefix:"KV_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite data source name (a file path, optionally with
	// query parameters). An empty DSN disables the indexed backend.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// KV holds the key-value store settings for the serialized-blob fallback.
type KV struct {
	// Dir is the directory holding one file per key.
	// Env: STORAGE_KV_DIR
	Dir string `env:"DIR"`

	// RedisAddr switches the fallback to a Redis key-value store when set
	// (e.g. "localhost:6379").
	// Env: STORAGE_KV_REDIS_ADDR
	RedisAddr string `env:"REDIS_ADDR"`

	// RedisPassword is the optional Redis AUTH password.
	// Env: STORAGE_KV_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`

	// RedisDB selects the Redis logical database.
	// Env: STORAGE_KV_REDIS_DB
	RedisDB int `env:"REDIS_DB"`
}

// Adapter holds the remote note service transport settings.
type Adapter struct {
	// HTTPAddress is the base address of the remote note service. When empty
	// the remote is disabled and the client works purely offline.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Session holds the settings used to resolve the current user identity.
type Session struct {
	// URL is the session lookup endpoint returning {"user":{"id":...}}.
	// Env: SESSION_URL
	URL string `env:"URL"`

	// Token is a bearer token whose subject claim is the identity. Used when
	// URL is empty.
	// Env: SESSION_TOKEN
	Token string `env:"TOKEN"`

	// TokenSignKey verifies the token signature when set.
	// Env: SESSION_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the sync worker reconciles with the
	// remote and retries failed pushes.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// defaultConfig holds values applied to every field left empty by all
// configuration sources.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB: DB{DSN: "smart_notes.db"},
			KV: KV{Dir: ".smart-notes"},
		},
		Adapter: Adapter{RequestTimeout: 10 * time.Second},
		Workers: Workers{SyncInterval: 5 * time.Minute},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags (args)
//  3. JSON file (path resolved from sources 1 and 2)
//
// Zero fields left after merging are filled from the defaults. The
// positional arguments remaining after flag parsing are returned as well.
func GetStructuredConfig(args []string) (*StructuredConfig, []string, error) {
	b := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults()

	cfg, err := b.build()
	return cfg, b.rest, err
}
