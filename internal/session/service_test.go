// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/homequest/homequest/internal/identity"
	"github.com/homequest/homequest/internal/platform/apperr"
	"github.com/homequest/homequest/internal/platform/constants"
	"github.com/homequest/homequest/internal/session"
)

// fakeStore is an in-memory [session.Store].
type fakeStore struct {
	byEmail map[string]*session.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{byEmail: map[string]*session.Session{}}
}

func (store *fakeStore) Insert(_ context.Context, record *session.Session) (*session.Session, error) {
	if _, exists := store.byEmail[record.Email]; exists {
		return nil, apperr.Conflict("This account is already logged in")
	}
	record.ID = bson.NewObjectID()
	clone := *record
	store.byEmail[record.Email] = &clone
	return record, nil
}

func (store *fakeStore) FindAll(_ context.Context) ([]*session.Session, error) {
	all := make([]*session.Session, 0, len(store.byEmail))
	for _, record := range store.byEmail {
		clone := *record
		all = append(all, &clone)
	}
	return all, nil
}

func (store *fakeStore) DeleteAll(_ context.Context) (int64, error) {
	deleted := int64(len(store.byEmail))
	store.byEmail = map[string]*session.Session{}
	return deleted, nil
}

// fakeAttemptStore is an in-memory [session.AttemptStore].
type fakeAttemptStore struct {
	counts map[string]int64
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{counts: map[string]int64{}}
}

func (store *fakeAttemptStore) Failures(_ context.Context, email string) (int64, error) {
	return store.counts[email], nil
}

func (store *fakeAttemptStore) RecordFailure(_ context.Context, email string) error {
	store.counts[email]++
	return nil
}

func (store *fakeAttemptStore) Reset(_ context.Context, email string) error {
	delete(store.counts, email)
	return nil
}

// fakeVerifier accepts a fixed credential pair.
type fakeVerifier struct {
	email    string
	password string
}

func (verifier *fakeVerifier) VerifyCredentials(_ context.Context, email, password string) (*identity.Identity, error) {
	if email != verifier.email || password != verifier.password {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	return &identity.Identity{
		ID:    bson.NewObjectID(),
		Email: email,
		Name:  "Test Account",
	}, nil
}

// outageVerifier simulates an identity-store failure during lookup.
type outageVerifier struct{}

func (outageVerifier) VerifyCredentials(context.Context, string, string) (*identity.Identity, error) {
	return nil, errors.New("connection reset by peer")
}

func newTestManager() (*session.Manager, *fakeStore, *fakeAttemptStore) {
	store := newFakeStore()
	attempts := newFakeAttemptStore()
	verifier := &fakeVerifier{email: "alice@example.com", password: "opensesame"}
	return session.NewManager(store, attempts, verifier, nil), store, attempts
}

/*
TestManager_Login verifies the happy path, the credential mismatch path, and
the single-active-session rule.
*/
func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		manager, _, attempts := newTestManager()
		attempts.counts["alice@example.com"] = 3 // prior failures

		created, err := manager.Login(ctx, session.LoginInput{
			Email:    "alice@example.com",
			Password: "opensesame",
		})
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", created.Email)
		assert.Equal(t, "alice@example.com", created.Identity.Email, "record embeds the identity snapshot")
		assert.False(t, created.LoggedInAt.IsZero())
		assert.Zero(t, attempts.counts["alice@example.com"], "success clears the failure counter")
	})

	t.Run("wrong_password", func(t *testing.T) {
		manager, _, attempts := newTestManager()

		_, err := manager.Login(ctx, session.LoginInput{
			Email:    "alice@example.com",
			Password: "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
		assert.Equal(t, int64(1), attempts.counts["alice@example.com"], "mismatch feeds the throttle")
	})

	t.Run("already_logged_in", func(t *testing.T) {
		manager, _, _ := newTestManager()

		_, err := manager.Login(ctx, session.LoginInput{
			Email:    "alice@example.com",
			Password: "opensesame",
		})
		require.NoError(t, err)

		_, err = manager.Login(ctx, session.LoginInput{
			Email:    "alice@example.com",
			Password: "opensesame",
		})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("store_failure_skips_throttle", func(t *testing.T) {
		store := newFakeStore()
		attempts := newFakeAttemptStore()
		manager := session.NewManager(store, attempts, outageVerifier{}, nil)

		_, err := manager.Login(ctx, session.LoginInput{
			Email:    "alice@example.com",
			Password: "opensesame",
		})
		require.Error(t, err)

		// An identity-store outage surfaces as an internal error and must
		// not count against the account's failure budget.
		assert.Nil(t, apperr.As(err))
		assert.Zero(t, attempts.counts["alice@example.com"])
	})

	t.Run("throttled", func(t *testing.T) {
		manager, _, attempts := newTestManager()
		attempts.counts["alice@example.com"] = constants.MaxLoginAttempts

		_, err := manager.Login(ctx, session.LoginInput{
			Email:    "alice@example.com",
			Password: "opensesame",
		})
		require.Error(t, err)
		assert.Equal(t, "RATE_LIMITED", apperr.As(err).Code)
	})
}

/*
TestManager_Logout verifies the global sweep and its idempotency.
*/
func TestManager_Logout(t *testing.T) {
	ctx := context.Background()
	manager, store, _ := newTestManager()

	// Seed two sessions directly; Login enforces uniqueness per email.
	_, err := store.Insert(ctx, &session.Session{Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = store.Insert(ctx, &session.Session{Email: "bob@example.com"})
	require.NoError(t, err)

	// Logging out one email clears all sessions.
	summary, err := manager.Logout(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Deleted)

	active, err := manager.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	// A second logout is a no-op, never an error.
	summary, err = manager.Logout(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.Deleted)

	// The sweep frees the email for a fresh login.
	relogged, err := manager.Login(ctx, session.LoginInput{
		Email:    "alice@example.com",
		Password: "opensesame",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", relogged.Email)
}
