// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

/*
Package session implements the active-session manager.

A session is a collection record keyed by the identity's email. At most one
session may exist per email at any moment; attempting a second concurrent
login is a conflict, not a replacement.

Architecture:

  - Manager: Orchestrates login, logout, and session introspection.
  - Store: Abstracted interface over the sessions collection.
  - AttemptStore: Redis-backed failed-login counter used for throttling.

There is no session token and no expiry; records exist purely to enforce the
single-active-session rule and to let operators inspect who is signed in.
*/
package session

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/homequest/homequest/internal/identity"
)

// # Domain Entities

// Session is an active-session record. It embeds a full copy of the identity
// as it looked at login time; later identity edits do not rewrite it.
type Session struct {
	ID         bson.ObjectID     `bson:"_id,omitempty" json:"id"`
	Email      string            `bson:"email" json:"email"`
	Identity   identity.Identity `bson:"identity" json:"identity"`
	LoggedInAt time.Time         `bson:"logged_in_at" json:"logged_in_at"`
}

// LogoutSummary reports the outcome of a logout sweep.
type LogoutSummary struct {
	Deleted int64 `json:"deleted"`
}
