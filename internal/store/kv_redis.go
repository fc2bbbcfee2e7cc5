// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/MKhiriev/smart-notes/internal/config"
)

// redisKeyValueStore is a [KeyValueStore] over plain Redis strings.
type redisKeyValueStore struct {
	client *redis.Client
}

// NewRedisKeyValueStore connects to the Redis server described by cfg and
// verifies the connection with PING.
func NewRedisKeyValueStore(ctx context.Context, cfg config.ClientKV) (KeyValueStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}

	return newRedisKeyValueStore(client), nil
}

func newRedisKeyValueStore(client *redis.Client) *redisKeyValueStore {
	return &redisKeyValueStore{client: client}
}

func (r *redisKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}

	return raw, nil
}

func (r *redisKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}

	return nil
}

func (r *redisKeyValueStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}

	return nil
}

func (r *redisKeyValueStore) Close() error {
	return r.client.Close()
}
