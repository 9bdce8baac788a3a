// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package identity

import (
	"context"
	"fmt"

	"github.com/homequest/homequest/internal/platform/apperr"
	"github.com/homequest/homequest/internal/platform/sec"
)

// # Registry Service

// Registry implements identity lifecycle use cases.
//
// # Review Process
//
// This service guards account uniqueness and credential storage. Any changes
// to hashing or registration logic must be reviewed before merge.
type Registry struct {
	store Store
}

// NewRegistry constructs a new [Registry] over the given store.
func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new identity.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Profile  map[string]any
}

/*
Register validates, hashes, and persists a brand new identity.

Description: Enrolls a new registrant, hashing the password and delegating
email-uniqueness to the store's unique index so concurrent duplicates cannot
slip through a read-then-write window.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Identity: Created entity
  - err: Conflict (if the email exists) or storage errors
*/
func (registry *Registry) Register(context context.Context, input RegisterInput) (*Identity, error) {

	// Fast-path uniqueness probe. The authoritative check is the unique
	// index at insert time; this only improves the common error path.
	_, err := registry.store.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("identity_service_hash_failed: %w", err)
	}

	identity := &Identity{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		Profile:      input.Profile,
	}

	// Persist the identity. A duplicate-key race surfaces as Conflict here.
	created, err := registry.store.Insert(context, identity)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("identity_service_register_failed: %w", err)
	}

	return created, nil
}

// # Credential Verification

/*
VerifyCredentials checks an email/password pair against the registry.

Description: Performs constant-time password comparison via bcrypt. The same
generic error is returned whether the email is unknown or the password is
wrong, to prevent account enumeration.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *Identity: The matching identity on success
  - err: Unauthorized or storage failures
*/
func (registry *Registry) VerifyCredentials(context context.Context, email, password string) (*Identity, error) {
	identity, err := registry.store.FindByEmail(context, email)

	// An unknown email gets the same generic message as a wrong password to
	// prevent enumeration. Anything else is a storage failure and must stay
	// an internal error, never a 401.
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, fmt.Errorf("identity_service_verify_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, identity.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return identity, nil
}

// # Account Lifecycle

/*
GetByID fetches a single identity by its hex identifier.

Returns:
  - *Identity: Hydrated entity
  - err: NotFound, ValidationError, or storage failures
*/
func (registry *Registry) GetByID(context context.Context, id string) (*Identity, error) {
	return registry.store.FindByID(context, id)
}

/*
ListAll returns every registered identity.

Returns:
  - []*Identity: All identities, possibly empty
  - err: Storage failures
*/
func (registry *Registry) ListAll(context context.Context) ([]*Identity, error) {
	return registry.store.FindAll(context)
}

// UpdateInput holds the optional fields of a partial identity update.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Email    *string
	Password *string
	Name     *string
	Profile  map[string]any
}

/*
UpdateByID applies a partial update to the identified account.

Description: Only fields present in the input are written. A new password is
re-hashed before storage; the plain text never reaches the store.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - err: NotFound, Conflict on an email collision, or storage failures
*/
func (registry *Registry) UpdateByID(context context.Context, id string, input UpdateInput) error {
	patch := map[string]any{}

	if input.Email != nil {
		patch[FieldEmail] = *input.Email
	}
	if input.Name != nil {
		patch[FieldName] = *input.Name
	}
	if input.Profile != nil {
		patch["profile"] = input.Profile
	}
	if input.Password != nil {
		hashedPassword, err := sec.HashPassword(*input.Password)
		if err != nil {
			return fmt.Errorf("identity_service_update_hash_failed: %w", err)
		}
		patch["password_hash"] = hashedPassword
	}

	if len(patch) == 0 {
		return apperr.ValidationError("No updatable fields were provided")
	}

	return registry.store.UpdateByID(context, id, patch)
}

/*
DeleteByID removes the identified account from the registry.

Returns:
  - err: NotFound, ValidationError, or storage failures
*/
func (registry *Registry) DeleteByID(context context.Context, id string) error {
	return registry.store.DeleteByID(context, id)
}
