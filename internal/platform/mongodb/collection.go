// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrNoDocument is returned by [Collection.FindOne] when no document matches
// the filter. Domain stores translate it into a not-found application error.
var ErrNoDocument = errors.New("mongodb: no matching document")

// Collection is a typed accessor over a single MongoDB collection.
//
// # Contract
//
// All operations are durable once they return without error. No
// multi-document transactional guarantees are provided; atomicity across
// check-then-act sequences is achieved through unique indexes
// ([Collection.EnsureUniqueIndex]) rather than explicit locking.
type Collection[T any] struct {
	coll *mongo.Collection
}

// NewCollection binds a typed accessor to the named collection.
func NewCollection[T any](database *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{coll: database.Collection(name)}
}

/*
Insert persists a new document and returns the store-assigned identifier.

Parameters:
  - context: context.Context
  - document: T (Entity to persist; any _id field is assigned by the store)

Returns:
  - bson.ObjectID: Store-assigned identifier
  - error: Duplicate-key violations (detectable via [IsDuplicateKey]) or connectivity errors
*/
func (c *Collection[T]) Insert(context context.Context, document T) (bson.ObjectID, error) {
	result, err := c.coll.InsertOne(context, document)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("mongodb_insert_failed: %w", err)
	}

	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, fmt.Errorf("mongodb_insert_failed: unexpected identifier type %T", result.InsertedID)
	}

	return id, nil
}

/*
FindOne returns the first document matching the exact-match filter.

Parameters:
  - context: context.Context
  - filter: any (bson.M / bson.D exact-match predicate)

Returns:
  - T: Hydrated document
  - error: [ErrNoDocument] when nothing matches, otherwise store errors
*/
func (c *Collection[T]) FindOne(context context.Context, filter any) (T, error) {
	var document T

	if filter == nil {
		filter = bson.D{}
	}

	err := c.coll.FindOne(context, filter).Decode(&document)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return document, ErrNoDocument
		}
		return document, fmt.Errorf("mongodb_find_one_failed: %w", err)
	}

	return document, nil
}

/*
FindAll returns every document matching the filter. Order is unspecified.

Parameters:
  - context: context.Context
  - filter: any (nil selects the whole collection)

Returns:
  - []T: Matching documents (empty slice when none match)
  - error: Store errors
*/
func (c *Collection[T]) FindAll(context context.Context, filter any) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}

	cursor, err := c.coll.Find(context, filter)
	if err != nil {
		return nil, fmt.Errorf("mongodb_find_all_failed: %w", err)
	}

	documents := []T{}
	if err := cursor.All(context, &documents); err != nil {
		return nil, fmt.Errorf("mongodb_find_all_decode_failed: %w", err)
	}

	return documents, nil
}

/*
UpdateByID merges the patch fields into the document with the given identifier.

Description: Applies a $set update, leaving fields absent from the patch
untouched.

Parameters:
  - context: context.Context
  - id: bson.ObjectID
  - patch: any (field map merged into the existing document)

Returns:
  - int64: Number of documents matched (0 when the identifier is unknown)
  - error: Duplicate-key violations or connectivity errors
*/
func (c *Collection[T]) UpdateByID(context context.Context, id bson.ObjectID, patch any) (int64, error) {
	result, err := c.coll.UpdateByID(context, id, bson.M{"$set": patch})
	if err != nil {
		return 0, fmt.Errorf("mongodb_update_by_id_failed: %w", err)
	}

	return result.MatchedCount, nil
}

/*
DeleteByID removes the document with the given identifier.

Returns:
  - int64: Number of documents deleted (0 when the identifier is unknown)
  - error: Store errors
*/
func (c *Collection[T]) DeleteByID(context context.Context, id bson.ObjectID) (int64, error) {
	result, err := c.coll.DeleteOne(context, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("mongodb_delete_by_id_failed: %w", err)
	}

	return result.DeletedCount, nil
}

/*
DeleteAll removes every document matching the filter.

Description: Bulk delete used by the global session reset. A nil filter
clears the entire collection.

Returns:
  - int64: Number of documents deleted (0 is not an error)
  - error: Store errors
*/
func (c *Collection[T]) DeleteAll(context context.Context, filter any) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}

	result, err := c.coll.DeleteMany(context, filter)
	if err != nil {
		return 0, fmt.Errorf("mongodb_delete_all_failed: %w", err)
	}

	return result.DeletedCount, nil
}

/*
EnsureUniqueIndex creates an ascending unique index on the given field.

Description: Idempotent; called once at startup. The unique index is what
turns the registry's and session manager's check-then-act sequences into a
single atomic insert-if-absent operation.
*/
func (c *Collection[T]) EnsureUniqueIndex(context context.Context, field string) error {
	_, err := c.coll.Indexes().CreateOne(context, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongodb_ensure_unique_index_failed: %w", err)
	}

	return nil
}

// IsDuplicateKey reports whether err is a unique-index violation.
//
// Stores use it to convert storage-level conflicts into domain conflicts
// (duplicate registration, double login).
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// ParseID converts a client-supplied hex identifier into an ObjectID.
//
// Malformed identifiers are reported as a plain error; handlers map it to a
// client error rather than letting it reach the driver.
func ParseID(hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("mongodb: invalid identifier %q: %w", hex, err)
	}
	return id, nil
}
