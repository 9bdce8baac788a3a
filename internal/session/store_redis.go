// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/homequest/homequest/internal/platform/constants"
)

// RedisAttemptStore implements [AttemptStore] using Redis.
type RedisAttemptStore struct {
	client *redis.Client
}

// NewRedisAttemptStore creates a new Redis-backed [AttemptStore].
func NewRedisAttemptStore(client *redis.Client) *RedisAttemptStore {
	return &RedisAttemptStore{client: client}
}

/*
Failures returns the current failed-attempt count for the email.

Description: An absent key counts as zero failures.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - int64: Current count
  - error: Connectivity errors
*/
func (store *RedisAttemptStore) Failures(context context.Context, email string) (int64, error) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixLoginAttempts, email)

	// Get the counter from Redis
	count, err := store.client.Get(context, key).Int64()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_login_attempts_get_failed: %w", err)
	}

	// Return the count
	return count, nil
}

/*
RecordFailure increments the counter, starting the expiry window on the
first failure.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Execution errors
*/
func (store *RedisAttemptStore) RecordFailure(context context.Context, email string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixLoginAttempts, email)

	// Increment the counter
	count, err := store.client.Incr(context, key).Result()
	if err != nil {
		return fmt.Errorf("redis_login_attempts_incr_failed: %w", err)
	}

	// Start the window on the first failure only, so the expiry is not
	// pushed out by every subsequent attempt.
	if count == 1 {
		if err := store.client.Expire(context, key, constants.LoginAttemptWindow).Err(); err != nil {
			return fmt.Errorf("redis_login_attempts_expire_failed: %w", err)
		}
	}

	// Return nil on success
	return nil
}

/*
Reset clears the counter after a successful login.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Deletion failures
*/
func (store *RedisAttemptStore) Reset(context context.Context, email string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixLoginAttempts, email)

	// Delete the counter from Redis
	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_login_attempts_del_failed: %w", err)
	}

	// Return nil on success
	return nil
}
