// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/homequest/homequest/internal/platform/request"
	"github.com/homequest/homequest/internal/platform/respond"
	"github.com/homequest/homequest/internal/platform/validate"
)

// Handler implements the HTTP layer for session management.
type Handler struct {
	manager *Manager
}

// NewHandler constructs a new session [Handler].
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// Routes returns a [chi.Router] configured with the session domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.login)
	router.Delete("/", handler.logout)
	router.Get("/", handler.listActive)

	return router
}

// loginRequest defines the expected JSON payload for a login attempt.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/v1/sessions.

Description: Authenticates an identity and establishes its single active
session.

Request:
  - body: loginRequest

Response:
  - 201: Session: The established session record
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Credential mismatch or unknown email
  - 409: ErrConflict: Account already logged in
  - 429: ErrRateLimited: Too many failed attempts
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("email", input.Email).
		Required("password", input.Password)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.manager.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

// logoutRequest defines the optional JSON payload for a logout.
type logoutRequest struct {
	Email string `json:"email"`
}

/*
DELETE /api/v1/sessions.

Description: Clears every active session. Idempotent; logging out while
nobody is logged in reports a zero-deletion summary. The email, when
supplied, is recorded for audit logs only.

Request:
  - body: logoutRequest (optional)

Response:
  - 200: LogoutSummary: Number of sessions removed
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {

	// The body is optional; an absent or malformed one simply means an
	// anonymous logout.
	var input logoutRequest
	_ = requestutil.DecodeJSON(request, &input)

	summary, err := handler.manager.Logout(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

/*
GET /api/v1/sessions.

Description: Enumerates every currently active session.

Response:
  - 200: []Session: All active sessions, possibly empty
*/
func (handler *Handler) listActive(writer http.ResponseWriter, request *http.Request) {
	sessions, err := handler.manager.ListActive(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessions)
}
