// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package session_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homequest/homequest/internal/session"
)

func newHTTPServer(t *testing.T) *httptest.Server {
	t.Helper()

	manager, _, _ := newTestManager()
	handler := session.NewHandler(manager)

	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server
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
TestHandler_LoginLogout walks the session lifecycle over HTTP.
*/
func TestHandler_LoginLogout(t *testing.T) {
	server := newHTTPServer(t)

	t.Run("login", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodPost, server.URL+"/",
			`{"email":"alice@example.com","password":"opensesame"}`)

		assert.Equal(t, http.StatusCreated, response.StatusCode)

		data := payload["data"].(map[string]any)
		assert.Equal(t, "alice@example.com", data["email"])

		embedded := data["identity"].(map[string]any)
		assert.Equal(t, "alice@example.com", embedded["email"])
		assert.NotContains(t, embedded, "password_hash")
	})

	t.Run("second_login_conflicts", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodPost, server.URL+"/",
			`{"email":"alice@example.com","password":"opensesame"}`)

		assert.Equal(t, http.StatusConflict, response.StatusCode)
		assert.Equal(t, "CONFLICT", payload["code"])
	})

	t.Run("list_active", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodGet, server.URL+"/", "")
		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Len(t, payload["data"].([]any), 1)
	})

	t.Run("logout", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodDelete, server.URL+"/",
			`{"email":"alice@example.com"}`)

		assert.Equal(t, http.StatusOK, response.StatusCode)
		data := payload["data"].(map[string]any)
		assert.Equal(t, float64(1), data["deleted"])
	})

	t.Run("logout_idempotent", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodDelete, server.URL+"/", "")

		assert.Equal(t, http.StatusOK, response.StatusCode)
		data := payload["data"].(map[string]any)
		assert.Equal(t, float64(0), data["deleted"])
	})

	t.Run("relogin_after_logout", func(t *testing.T) {
		response, _ := doJSON(t, http.MethodPost, server.URL+"/",
			`{"email":"alice@example.com","password":"opensesame"}`)

		assert.Equal(t, http.StatusCreated, response.StatusCode)

		// Clean up so the remaining subtests start from an empty set.
		response, _ = doJSON(t, http.MethodDelete, server.URL+"/", "")
		assert.Equal(t, http.StatusOK, response.StatusCode)
	})

	t.Run("bad_credentials", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodPost, server.URL+"/",
			`{"email":"alice@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", payload["code"])
	})

	t.Run("missing_fields", func(t *testing.T) {
		response, payload := doJSON(t, http.MethodPost, server.URL+"/", `{}`)

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", payload["code"])
	})
}
