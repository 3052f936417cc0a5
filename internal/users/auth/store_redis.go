// Copyright (c) 2026 Warehouse 21. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/warehouse21/stockroom/internal/platform/apperr"
	"github.com/warehouse21/stockroom/internal/platform/constants"
	"github.com/warehouse21/stockroom/internal/platform/sec"
)

// RedisSessionRepository implements [SessionRepository] using Redis. The
// TTL on the key is the only expiry mechanism; no sweeper runs.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository constructs a Redis-backed session store.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Set stores a session identity under a token hash with a TTL.

Parameters:
  - context: context.Context
  - tokenHash: string
  - identity: sec.Identity
  - ttl: time.Duration

Returns:
  - error: Serialization or storage failures
*/
func (repository *RedisSessionRepository) Set(context context.Context, tokenHash string, identity sec.Identity, ttl time.Duration) error {
	key := constants.RedisPrefixSession + tokenHash

	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

/*
Get resolves a token hash into the stored identity.

Description: Returns apperr.NotFound when the key is absent, which covers
both unknown tokens and expired sessions.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *sec.Identity: Stored identity
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) Get(context context.Context, tokenHash string) (*sec.Identity, error) {
	key := constants.RedisPrefixSession + tokenHash

	payload, err := repository.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	identity := &sec.Identity{}
	if err := json.Unmarshal(payload, identity); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	return identity, nil
}

/*
Delete removes a session.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
