// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package identity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/homequest/homequest/internal/platform/request"
	"github.com/homequest/homequest/internal/platform/respond"
	"github.com/homequest/homequest/internal/platform/validate"
)

// Handler implements the HTTP layer for the identity registry.
type Handler struct {
	registry *Registry
}

// NewHandler constructs a new identity [Handler].
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// Routes returns a [chi.Router] configured with the identity domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Registration & Discovery
	router.Post("/", handler.register)
	router.Get("/", handler.list)

	// Account Lifecycle
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

// # Registration Endpoint

/*
POST /api/v1/identities.

Description: Enrolls a new identity. The payload is schemaless beyond the
required email and password; any extra fields are preserved verbatim in the
identity's profile sub-document.

Request:
  - body: JSON object with at least "email" and "password"

Response:
  - 201: Identity: Created entity (password never echoed)
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {

	// Decode into a free-form map so extra profile fields survive intact.
	var body map[string]any
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	email, _ := body[FieldEmail].(string)
	password, _ := body[FieldPassword].(string)
	name, _ := body[FieldName].(string)

	v := &validate.Validator{}
	v.Required(FieldEmail, email).
		Required(FieldPassword, password)
	if email != "" {
		v.Email(FieldEmail, email)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Everything else in the payload becomes profile data.
	profile := map[string]any{}
	for key, value := range body {
		switch key {
		case FieldEmail, FieldPassword, FieldName:
			continue
		}
		profile[key] = value
	}
	if len(profile) == 0 {
		profile = nil
	}

	created, err := handler.registry.Register(request.Context(), RegisterInput{
		Email:    email,
		Password: password,
		Name:     name,
		Profile:  profile,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// # Lookup Endpoints

/*
GET /api/v1/identities.

Description: Enumerates every registered identity.

Response:
  - 200: []Identity: All identities, possibly empty
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	identities, err := handler.registry.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identities)
}

/*
GET /api/v1/identities/{id}.

Description: Retrieves a single identity by its hex identifier.

Request:
  - id: string (hex ObjectID)

Response:
  - 200: Identity: Hydrated entity
  - 400: Validation: Malformed identifier
  - 404: ErrNotFound: No such identity
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, FieldID)

	identity, err := handler.registry.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identity)
}

// # Mutation Endpoints

// updateRequest defines the expected JSON payload for identity updates.
// Absent fields are left unchanged.
type updateRequest struct {
	Email    *string        `json:"email"`
	Password *string        `json:"password"`
	Name     *string        `json:"name"`
	Profile  map[string]any `json:"profile"`
}

/*
PUT /api/v1/identities/{id}.

Description: Applies a partial update to the identified account. A supplied
password is re-hashed before storage.

Request:
  - id: string (hex ObjectID)
  - body: updateRequest (Partial JSON)

Response:
  - 200: message: "Identity updated successfully"
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: No such identity
  - 409: ErrConflict: New email already registered
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, FieldID)

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Email != nil {
		v.Email(FieldEmail, *input.Email)
	}
	if input.Password != nil {
		v.Required(FieldPassword, *input.Password)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.registry.UpdateByID(request.Context(), id, UpdateInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Profile:  input.Profile,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldMessage: "Identity updated successfully"})
}

/*
DELETE /api/v1/identities/{id}.

Description: Removes the identified account from the registry.

Request:
  - id: string (hex ObjectID)

Response:
  - 200: message: "Identity deleted successfully"
  - 400: Validation: Malformed identifier
  - 404: ErrNotFound: No such identity
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, FieldID)

	if err := handler.registry.DeleteByID(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldMessage: "Identity deleted successfully"})
}
