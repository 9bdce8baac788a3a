// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package session

import (
	"context"
)

// # Session Data Access

// Store defines the data access contract for active-session records.
type Store interface {

	/*
		Insert persists a new session record.

		Description: The unique index on email makes this the single point
		where the one-session-per-email rule is enforced; a concurrent login
		for the same email fails here atomically.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - *Session: Stored record with its assigned identifier
		  - error: apperr.Conflict when the email already has an active
		    session, otherwise persistence failures
	*/
	Insert(context context.Context, session *Session) (*Session, error)

	/*
		FindAll returns every active session. Order is unspecified.
	*/
	FindAll(context context.Context) ([]*Session, error)

	/*
		DeleteAll removes every session record.

		Returns:
		  - int64: Number of records removed (zero is not an error)
		  - error: Persistence failures
	*/
	DeleteAll(context context.Context) (int64, error)
}

// # Login Attempt Tracking

// AttemptStore counts failed logins per email for brute-force throttling.
//
// Implementations are expected to fail open: an unreachable counter must not
// lock every account out.
type AttemptStore interface {

	/*
		Failures returns the current failed-attempt count for the email.
	*/
	Failures(context context.Context, email string) (int64, error)

	/*
		RecordFailure increments the counter, starting the expiry window on
		the first failure.
	*/
	RecordFailure(context context.Context, email string) error

	/*
		Reset clears the counter after a successful login.
	*/
	Reset(context context.Context, email string) error
}
