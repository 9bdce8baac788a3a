// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

// MongoDB implementation of the identity [Store].
//
// # Error Mapping
//
// Driver-level errors (no matching document, unique-index violations) are
// mapped to domain-friendly [apperr.AppError] types to avoid leaking storage
// implementation details.

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/homequest/homequest/internal/platform/apperr"
	"github.com/homequest/homequest/internal/platform/constants"
	"github.com/homequest/homequest/internal/platform/mongodb"
)

// MongoStore implements the [Store] interface over the identities collection.
type MongoStore struct {
	collection *mongodb.Collection[Identity]
}

// NewMongoStore creates a MongoDB implementation of the identity [Store].
func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: mongodb.NewCollection[Identity](database, constants.CollectionIdentities),
	}
}

// EnsureIndexes creates the unique email index backing the one-registration-
// per-email invariant. Idempotent; called once at startup.
func (store *MongoStore) EnsureIndexes(context context.Context) error {
	return store.collection.EnsureUniqueIndex(context, FieldEmail)
}

/*
Insert persists a new identity document.

Description: The unique index on email makes this an atomic
insert-if-absent; a concurrent duplicate registration surfaces here as a
duplicate-key error rather than slipping through a read-then-write window.

Returns:
  - *Identity: Entity with the store-assigned identifier filled in
  - error: apperr.Conflict on duplicate email, wrapped store errors otherwise
*/
func (store *MongoStore) Insert(context context.Context, identity *Identity) (*Identity, error) {
	now := time.Now()
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = now
	}
	identity.UpdatedAt = now

	id, err := store.collection.Insert(context, *identity)
	if err != nil {
		if mongodb.IsDuplicateKey(err) {
			return nil, apperr.Conflict("An identity with this email already exists")
		}
		return nil, fmt.Errorf("identity_store_insert_failed: %w", err)
	}

	identity.ID = id
	return identity, nil
}

/*
FindByEmail retrieves an identity by its unique email address.

Returns:
  - *Identity: Hydrated entity
  - error: apperr.NotFound or wrapped store errors
*/
func (store *MongoStore) FindByEmail(context context.Context, email string) (*Identity, error) {
	identity, err := store.collection.FindOne(context, bson.M{FieldEmail: email})
	if err != nil {
		if errors.Is(err, mongodb.ErrNoDocument) {
			return nil, apperr.NotFound("Identity")
		}
		return nil, fmt.Errorf("identity_store_find_by_email_failed: %w", err)
	}

	return &identity, nil
}

/*
FindByID retrieves an identity by its hex identifier.

Description: Malformed identifiers are rejected as a client error before
reaching the driver.

Returns:
  - *Identity: Hydrated entity
  - error: apperr.ValidationError, apperr.NotFound, or wrapped store errors
*/
func (store *MongoStore) FindByID(context context.Context, id string) (*Identity, error) {
	objectID, err := mongodb.ParseID(id)
	if err != nil {
		return nil, apperr.ValidationError("Invalid identity identifier")
	}

	identity, err := store.collection.FindOne(context, bson.M{"_id": objectID})
	if err != nil {
		if errors.Is(err, mongodb.ErrNoDocument) {
			return nil, apperr.NotFound("Identity")
		}
		return nil, fmt.Errorf("identity_store_find_by_id_failed: %w", err)
	}

	return &identity, nil
}

// FindAll returns every registered identity.
func (store *MongoStore) FindAll(context context.Context) ([]*Identity, error) {
	documents, err := store.collection.FindAll(context, nil)
	if err != nil {
		return nil, fmt.Errorf("identity_store_find_all_failed: %w", err)
	}

	identities := make([]*Identity, 0, len(documents))
	for i := range documents {
		identities = append(identities, &documents[i])
	}

	return identities, nil
}

/*
UpdateByID merges the patch fields into the identified document.

Description: Fields absent from the patch are untouched ($set merge). The
updated_at timestamp is always refreshed.

Returns:
  - error: apperr.ValidationError, apperr.NotFound, apperr.Conflict on an
    email collision, or wrapped store errors
*/
func (store *MongoStore) UpdateByID(context context.Context, id string, patch map[string]any) error {
	objectID, err := mongodb.ParseID(id)
	if err != nil {
		return apperr.ValidationError("Invalid identity identifier")
	}

	patch["updated_at"] = time.Now()

	matched, err := store.collection.UpdateByID(context, objectID, patch)
	if err != nil {
		if mongodb.IsDuplicateKey(err) {
			return apperr.Conflict("An identity with this email already exists")
		}
		return fmt.Errorf("identity_store_update_by_id_failed: %w", err)
	}

	if matched == 0 {
		return apperr.NotFound("Identity")
	}

	return nil
}

/*
DeleteByID removes the identified document.

Returns:
  - error: apperr.ValidationError, apperr.NotFound, or wrapped store errors
*/
func (store *MongoStore) DeleteByID(context context.Context, id string) error {
	objectID, err := mongodb.ParseID(id)
	if err != nil {
		return apperr.ValidationError("Invalid identity identifier")
	}

	deleted, err := store.collection.DeleteByID(context, objectID)
	if err != nil {
		return fmt.Errorf("identity_store_delete_by_id_failed: %w", err)
	}

	if deleted == 0 {
		return apperr.NotFound("Identity")
	}

	return nil
}
