// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package session

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/homequest/homequest/internal/platform/apperr"
	"github.com/homequest/homequest/internal/platform/constants"
	"github.com/homequest/homequest/internal/platform/mongodb"
)

// MongoStore implements the [Store] interface over the sessions collection.
type MongoStore struct {
	collection *mongodb.Collection[Session]
}

// NewMongoStore creates a MongoDB implementation of the session [Store].
func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: mongodb.NewCollection[Session](database, constants.CollectionSessions),
	}
}

// EnsureIndexes creates the unique email index backing the
// one-session-per-email invariant. Idempotent; called once at startup.
func (store *MongoStore) EnsureIndexes(context context.Context) error {
	return store.collection.EnsureUniqueIndex(context, "email")
}

/*
Insert persists a new session record.

Description: A concurrent login for the same email loses the insert race and
surfaces as a duplicate-key error, which is reported as Conflict.

Returns:
  - *Session: Stored record with its assigned identifier
  - error: apperr.Conflict or wrapped store errors
*/
func (store *MongoStore) Insert(context context.Context, session *Session) (*Session, error) {
	id, err := store.collection.Insert(context, *session)
	if err != nil {
		if mongodb.IsDuplicateKey(err) {
			return nil, apperr.Conflict("This account is already logged in")
		}
		return nil, fmt.Errorf("session_store_insert_failed: %w", err)
	}

	session.ID = id
	return session, nil
}

// FindAll returns every active session.
func (store *MongoStore) FindAll(context context.Context) ([]*Session, error) {
	documents, err := store.collection.FindAll(context, nil)
	if err != nil {
		return nil, fmt.Errorf("session_store_find_all_failed: %w", err)
	}

	sessions := make([]*Session, 0, len(documents))
	for i := range documents {
		sessions = append(sessions, &documents[i])
	}

	return sessions, nil
}

/*
DeleteAll removes every session record.

Returns:
  - int64: Number of records removed
  - error: Wrapped store errors
*/
func (store *MongoStore) DeleteAll(context context.Context) (int64, error) {
	deleted, err := store.collection.DeleteAll(context, nil)
	if err != nil {
		return 0, fmt.Errorf("session_store_delete_all_failed: %w", err)
	}

	return deleted, nil
}
