package resource

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/homequest/homequest/internal/platform/apperr"
	"github.com/homequest/homequest/internal/platform/mongodb"
)

type MongoRepository struct {
	collection *mongodb.Collection[Document]
}

func NewMongoRepository(database *mongo.Database, collectionName string) *MongoRepository {
	return &MongoRepository{
		collection: mongodb.NewCollection[Document](database, collectionName),
	}
}

func (repository *MongoRepository) Insert(context context.Context, document Document) (Document, error) {
	stored := make(Document, len(document))
	for key, value := range document {
		if key == FieldID || key == "_id" {
			continue
		}
		stored[key] = value
	}

	id, err := repository.collection.Insert(context, stored)
	if err != nil {
		return nil, fmt.Errorf("resource_store_insert_failed: %w", err)
	}

	stored[FieldID] = id.Hex()
	return stored, nil
}

func (repository *MongoRepository) FindByID(context context.Context, id string) (Document, error) {
	objectID, err := mongodb.ParseID(id)
	if err != nil {
		return nil, apperr.ValidationError("Invalid document identifier")
	}

	document, err := repository.collection.FindOne(context, bson.M{"_id": objectID})
	if err != nil {
		if errors.Is(err, mongodb.ErrNoDocument) {
			return nil, apperr.NotFound("Document")
		}
		return nil, fmt.Errorf("resource_store_find_by_id_failed: %w", err)
	}

	return normalizeID(document), nil
}

func (repository *MongoRepository) FindAll(context context.Context) ([]Document, error) {
	documents, err := repository.collection.FindAll(context, nil)
	if err != nil {
		return nil, fmt.Errorf("resource_store_find_all_failed: %w", err)
	}

	normalized := make([]Document, 0, len(documents))
	for _, document := range documents {
		normalized = append(normalized, normalizeID(document))
	}

	return normalized, nil
}

func (repository *MongoRepository) UpdateByID(context context.Context, id string, patch Document) error {
	objectID, err := mongodb.ParseID(id)
	if err != nil {
		return apperr.ValidationError("Invalid document identifier")
	}

	fields := make(map[string]any, len(patch))
	for key, value := range patch {
		if key == FieldID || key == "_id" {
			continue
		}
		fields[key] = value
	}
	if len(fields) == 0 {
		return apperr.ValidationError("No updatable fields were provided")
	}

	matched, err := repository.collection.UpdateByID(context, objectID, fields)
	if err != nil {
		return fmt.Errorf("resource_store_update_by_id_failed: %w", err)
	}
	if matched == 0 {
		return apperr.NotFound("Document")
	}

	return nil
}

func (repository *MongoRepository) DeleteByID(context context.Context, id string) error {
	objectID, err := mongodb.ParseID(id)
	if err != nil {
		return apperr.ValidationError("Invalid document identifier")
	}

	deleted, err := repository.collection.DeleteByID(context, objectID)
	if err != nil {
		return fmt.Errorf("resource_store_delete_by_id_failed: %w", err)
	}
	if deleted == 0 {
		return apperr.NotFound("Document")
	}

	return nil
}

// normalizeID rewrites the driver's _id into a plain hex "id" field so the
// storage detail never leaks into API payloads.
func normalizeID(document Document) Document {
	if raw, ok := document["_id"]; ok {
		if objectID, ok := raw.(bson.ObjectID); ok {
			document[FieldID] = objectID.Hex()
		}
		delete(document, "_id")
	}
	return document
}
