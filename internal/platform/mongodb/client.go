// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

/*
Package mongodb provides the document store layer for HomeQuest.

It manages the MongoDB client lifecycle (connection retries, pooling, health
checks) and exposes a generic, typed collection accessor used by every
stateful component — identities, sessions, and the resource collections.

Architecture:

  - Client: Environment-driven configuration with aggressive startup retries.
  - Collection: A typed accessor implementing the insert / find-one / find-all /
    update-by-id / delete-by-id / delete-all contract.
  - Error Mapping: Driver errors are classified (no-document, duplicate-key)
    so domain stores can translate them into [apperr.AppError] values.
*/
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/homequest/homequest/internal/platform/config"
)

// ErrFailedToConnect is returned when the client cannot reach the server
// within the configured retry budget.
var ErrFailedToConnect = errors.New("mongodb: failed to connect")

// NewClient creates a new MongoDB client and verifies connectivity.
//
// Connection attempts are retried [config.MongoConfig.RetryAttempts] times
// with [config.MongoConfig.RetryInterval] between attempts, which absorbs
// transient failures during container orchestration startup.
func NewClient(ctx context.Context, cfg config.MongoConfig, logger *slog.Logger) (*mongo.Client, error) {
	for attempt := range cfg.RetryAttempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetMaxPoolSize(cfg.MaxPoolSize).
				SetMinPoolSize(cfg.MinPoolSize).
				SetMaxConnIdleTime(cfg.MaxConnIdleTime).
				SetRetryWrites(cfg.RetryWrites).
				SetRetryReads(cfg.RetryReads),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				logger.Info("mongodb client connected",
					slog.Uint64("max_pool_size", cfg.MaxPoolSize),
				)
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}

		logger.Warn("mongodb connect attempt failed",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", cfg.RetryAttempts),
		)

		// Wait for the next retry interval
		time.Sleep(cfg.RetryInterval)
	}

	return nil, ErrFailedToConnect
}

// NewDatabase creates a connected client and returns a handle scoped to the
// configured logical database.
func NewDatabase(ctx context.Context, cfg config.MongoConfig, logger *slog.Logger) (*mongo.Database, error) {
	client, err := NewClient(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return client.Database(cfg.Database), nil
}

// Ping verifies that the MongoDB client is healthy.
//
// It is wired into the /ready readiness probe.
func Ping(ctx context.Context, client *mongo.Client) error {
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb: ping failed: %w", err)
	}
	return nil
}
