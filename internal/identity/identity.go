// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

/*
Package identity implements the identity registry.

It defines the core domain entity (Identity) and the logic for registration,
credential verification, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. The registry owns no storage itself;
it operates over a [Store] handle scoped to the identities collection and
enforces exactly one registration per email.
*/
package identity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// # Domain Entities

// Identity represents a registrant of the HomeQuest platform, keyed by email.
type Identity struct {
	ID           bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	Email        string         `bson:"email" json:"email"`
	PasswordHash string         `bson:"password_hash" json:"-"` // Explicitly omitted from JSON for security.
	Name         string         `bson:"name,omitempty" json:"name,omitempty"`
	Profile      map[string]any `bson:"profile,omitempty" json:"profile,omitempty"`
	CreatedAt    time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at" json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the registry domain.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldID       = "id"
	FieldMessage  = "message"
)
