// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package identity

import (
	"context"
)

// # Identity Data Access

// Store defines the data access contract for registered identities.
//
// Implementations report not-found and conflict conditions as
// [apperr.AppError] values so the registry never inspects storage errors.
type Store interface {

	/*
		Insert persists a brand-new identity.

		Parameters:
		  - context: context.Context
		  - identity: *Identity

		Returns:
		  - *Identity: Stored entity including the store-assigned identifier
		  - error: apperr.Conflict when the email is already registered,
		    otherwise persistence failures
	*/
	Insert(context context.Context, identity *Identity) (*Identity, error)

	/*
		FindByEmail returns the identity with the given email.

		Returns:
		  - *Identity: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Identity, error)

	/*
		FindByID returns the identity with the given hex identifier.

		Returns:
		  - *Identity: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Identity, error)

	/*
		FindAll returns every registered identity. Order is unspecified.
	*/
	FindAll(context context.Context) ([]*Identity, error)

	/*
		UpdateByID merges the patch fields into the identified document.

		Returns:
		  - error: apperr.NotFound when the identifier matches nothing,
		    apperr.Conflict when the patch collides with another email,
		    otherwise persistence failures
	*/
	UpdateByID(context context.Context, id string, patch map[string]any) error

	/*
		DeleteByID removes the identified document.

		Returns:
		  - error: apperr.NotFound when the identifier matches nothing,
		    otherwise persistence failures
	*/
	DeleteByID(context context.Context, id string) error
}
