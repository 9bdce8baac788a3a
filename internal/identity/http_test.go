// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homequest/homequest/internal/identity"
)

func newTestServer(t *testing.T) (*httptest.Server, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	handler := identity.NewHandler(identity.NewRegistry(store))

	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server, store
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	request, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	t.Cleanup(func() { _ = response.Body.Close() })

	var payload map[string]any
	require.NoError(t, json.NewDecoder(response.Body).Decode(&payload))
	return response, payload
}

/*
TestHandler_Register exercises the registration endpoint end to end, including
profile capture and the duplicate-email conflict.
*/
func TestHandler_Register(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("created", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodPost, server.URL+"/",
			`{"email":"eve@example.com","password":"secret","name":"Eve","phone":"555-0101"}`)

		assert.Equal(t, http.StatusCreated, response.StatusCode)

		data := payload["data"].(map[string]any)
		assert.Equal(t, "eve@example.com", data["email"])
		assert.Equal(t, "Eve", data["name"])
		assert.NotContains(t, data, "password_hash", "hash must never be serialized")

		profile := data["profile"].(map[string]any)
		assert.Equal(t, "555-0101", profile["phone"], "extra fields land in the profile")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodPost, server.URL+"/",
			`{"email":"eve@example.com","password":"other"}`)

		assert.Equal(t, http.StatusConflict, response.StatusCode)
		assert.Equal(t, "CONFLICT", payload["code"])
	})

	t.Run("missing_password", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodPost, server.URL+"/",
			`{"email":"frank@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", payload["code"])
	})

	t.Run("malformed_json", func(t *testing.T) {
		response, _ := doJSON(t, http.MethodPost, server.URL+"/", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	})
}

/*
TestHandler_Lifecycle walks an identity through fetch, update, and delete.
*/
func TestHandler_Lifecycle(t *testing.T) {
	server, store := newTestServer(t)

	registry := identity.NewRegistry(store)
	created, err := registry.Register(context.Background(), identity.RegisterInput{
		Email:    "grace@example.com",
		Password: "secret",
		Name:     "Grace",
	})
	require.NoError(t, err)
	id := created.ID.Hex()

	t.Run("get", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodGet, server.URL+"/"+id, "")
		assert.Equal(t, http.StatusOK, response.StatusCode)

		data := payload["data"].(map[string]any)
		assert.Equal(t, "grace@example.com", data["email"])
	})

	t.Run("list", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodGet, server.URL+"/", "")
		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Len(t, payload["data"].([]any), 1)
	})

	t.Run("update", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodPut, server.URL+"/"+id,
			`{"name":"Gracie"}`)

		assert.Equal(t, http.StatusOK, response.StatusCode)
		data := payload["data"].(map[string]any)
		assert.Equal(t, "Identity updated successfully", data["message"])

		found, err := registry.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Gracie", found.Name)
	})

	t.Run("delete", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodDelete, server.URL+"/"+id, "")
		assert.Equal(t, http.StatusOK, response.StatusCode)

		data := payload["data"].(map[string]any)
		assert.Equal(t, "Identity deleted successfully", data["message"])
	})

	t.Run("get_after_delete", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodGet, server.URL+"/"+id, "")
		assert.Equal(t, http.StatusNotFound, response.StatusCode)
		assert.Equal(t, "NOT_FOUND", payload["code"])
	})
}
