// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/platform/constants"
	"github.com/taibuivan/askora/internal/platform/sec"
)

// RedisTokenCache implements [TokenCache] on top of go-redis.
//
// # Why cache token lookups?
//
// Every authenticated request carries an opaque token that must be resolved
// to an identity. Caching the resolved principal keeps the hot path off the
// relational store; the TTL bounds staleness and eager deletion handles
// revocation.
type RedisTokenCache struct {
	client *redis.Client
}

// NewTokenCache creates a Redis-backed token cache.
func NewTokenCache(client *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{client: client}
}

// Get returns the cached principal for a token key.
// A cache miss is reported as apperr.NotFound so callers can fall back to Postgres.
func (cache *RedisTokenCache) Get(context context.Context, key string) (*sec.Principal, error) {
	payload, err := cache.client.Get(context, constants.RedisPrefixAuthToken+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Token cache entry")
		}
		return nil, fmt.Errorf("redis_token_cache_get_failed: %w", err)
	}

	principal := &sec.Principal{}
	if err := json.Unmarshal(payload, principal); err != nil {
		return nil, fmt.Errorf("redis_token_cache_decode_failed: %w", err)
	}

	return principal, nil
}

// Set stores the resolved principal for a token key with the given TTL.
func (cache *RedisTokenCache) Set(context context.Context, key string, principal *sec.Principal, ttl time.Duration) error {
	payload, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("redis_token_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, constants.RedisPrefixAuthToken+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_token_cache_set_failed: %w", err)
	}

	return nil
}

// Delete removes a cached token entry (used on revocation).
func (cache *RedisTokenCache) Delete(context context.Context, key string) error {
	if err := cache.client.Del(context, constants.RedisPrefixAuthToken+key).Err(); err != nil {
		return fmt.Errorf("redis_token_cache_delete_failed: %w", err)
	}
	return nil
}
