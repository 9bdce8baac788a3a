// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/homequest/homequest/internal/identity"
	"github.com/homequest/homequest/internal/platform/apperr"
	"github.com/homequest/homequest/internal/platform/constants"
)

// # Contracts & Types

// CredentialVerifier defines the contract for checking login credentials.
// Satisfied by [identity.Registry].
type CredentialVerifier interface {
	// VerifyCredentials checks an email/password pair.
	//
	// # Returns
	//   - The matching identity, or an Unauthorized err on mismatch.
	VerifyCredentials(context context.Context, email, password string) (*identity.Identity, error)
}

// Manager implements session lifecycle use cases.
type Manager struct {
	store    Store
	attempts AttemptStore
	verifier CredentialVerifier
	logger   *slog.Logger
}

// NewManager constructs a new session [Manager] with necessary dependencies.
func NewManager(store Store, attempts AttemptStore, verifier CredentialVerifier, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:    store,
		attempts: attempts,
		verifier: verifier,
		logger:   logger,
	}
}

// # Login Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login verifies credentials and establishes the single active session.

Description: Checks the brute-force throttle, verifies the password, then
atomically inserts the session record. The unique index on email decides
concurrent logins; exactly one wins and the rest receive Conflict.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: The established session, embedding the identity snapshot
  - err: RateLimited, Unauthorized, Conflict, or internal failures
*/
func (manager *Manager) Login(context context.Context, input LoginInput) (*Session, error) {

	// Throttle check. The counter is advisory: if Redis is unreachable we
	// fail open rather than locking every account out.
	failures, err := manager.attempts.Failures(context, input.Email)
	if err != nil {
		manager.logger.WarnContext(context, "login_throttle_unavailable",
			slog.String("error", err.Error()),
		)
	} else if failures >= constants.MaxLoginAttempts {
		return nil, apperr.RateLimited(int(constants.LoginAttemptWindow.Seconds()))
	}

	// Verify credentials. Only a genuine mismatch feeds the throttle
	// counter; a store outage must not lock accounts out once it recovers.
	verified, err := manager.verifier.VerifyCredentials(context, input.Email, input.Password)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "UNAUTHORIZED" {
			if recordErr := manager.attempts.RecordFailure(context, input.Email); recordErr != nil {
				manager.logger.WarnContext(context, "login_throttle_record_failed",
					slog.String("error", recordErr.Error()),
				)
			}
		}
		return nil, err
	}

	// Establish the session. The record embeds a full copy of the identity
	// as it looked right now; concurrent duplicates lose the insert race.
	session := &Session{
		Email:      verified.Email,
		Identity:   *verified,
		LoggedInAt: time.Now(),
	}

	created, err := manager.store.Insert(context, session)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("session_service_login_failed: %w", err)
	}

	// Successful login clears the failure counter.
	if err := manager.attempts.Reset(context, verified.Email); err != nil {
		manager.logger.WarnContext(context, "login_throttle_reset_failed",
			slog.String("error", err.Error()),
		)
	}

	return created, nil
}

// # Logout Flow

/*
Logout clears every active session.

Description: The sweep is global: all session records are removed regardless
of the supplied email, which is recorded for audit logs only. Logging out
while nobody is logged in is not an error; the summary simply reports zero.

Parameters:
  - context: context.Context
  - email: string (audit trail only, may be empty)

Returns:
  - *LogoutSummary: Number of sessions removed
  - err: Storage failures
*/
func (manager *Manager) Logout(context context.Context, email string) (*LogoutSummary, error) {
	deleted, err := manager.store.DeleteAll(context)
	if err != nil {
		return nil, fmt.Errorf("session_service_logout_failed: %w", err)
	}

	manager.logger.InfoContext(context, "sessions_cleared",
		slog.String("requested_by", email),
		slog.Int64("deleted", deleted),
	)

	return &LogoutSummary{Deleted: deleted}, nil
}

// # Introspection

/*
ListActive returns every current session record.

Returns:
  - []*Session: All active sessions, possibly empty
  - err: Storage failures
*/
func (manager *Manager) ListActive(context context.Context) ([]*Session, error) {
	return manager.store.FindAll(context)
}
