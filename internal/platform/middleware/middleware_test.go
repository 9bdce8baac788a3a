// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homequest/homequest/internal/platform/constants"
	"github.com/homequest/homequest/internal/platform/ctxutil"
	"github.com/homequest/homequest/internal/platform/middleware"
)

/*
TestRequestID_Generated verifies that a correlation ID is created when the
client does not supply one, and echoed into the response headers.
*/
func TestRequestID_Generated(t *testing.T) {
	var seenID string

	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seenID = ctxutil.GetRequestID(request.Context())
		writer.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seenID)
	assert.Equal(t, seenID, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestRequestID_Propagated verifies that a client-supplied ID is preserved.
*/
func TestRequestID_Propagated(t *testing.T) {
	var seenID string

	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seenID = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "client-supplied-id")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Equal(t, "client-supplied-id", seenID)
}

/*
TestPanicRecovery ensures a downstream panic becomes a 500 response
instead of crashing the server.
*/
func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_SERVER_ERROR")
}

/*
TestRealIP checks proxy header precedence for client IP extraction.
*/
func TestRealIP(t *testing.T) {
	tests := []struct {
		name     string
		realIP   string
		fwdFor   string
		remote   string
		expected string
	}{
		{"x_real_ip_wins", "203.0.113.7", "198.51.100.2", "192.0.2.1:1234", "203.0.113.7"},
		{"forwarded_for_first_hop", "", "198.51.100.2, 10.0.0.1", "192.0.2.1:1234", "198.51.100.2"},
		{"remote_addr_fallback", "", "", "192.0.2.1:1234", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.RemoteAddr = tt.remote
			if tt.realIP != "" {
				request.Header.Set(constants.HeaderXRealIP, tt.realIP)
			}
			if tt.fwdFor != "" {
				request.Header.Set(constants.HeaderXForwardedFor, tt.fwdFor)
			}

			assert.Equal(t, tt.expected, middleware.RealIP(request))
		})
	}
}

// stubConfig drives the CORS middleware in tests.
type stubConfig struct {
	development  bool
	extraOrigins []string
}

func (cfg stubConfig) IsDevelopment() bool           { return cfg.development }
func (cfg stubConfig) AllowedExtraOrigins() []string { return cfg.extraOrigins }

/*
TestCORS verifies the origin allow rules: first-party suffix, configured
extra origins, and rejection of everything else in production.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		cfg     stubConfig
		origin  string
		allowed bool
	}{
		{"dev_allows_any", stubConfig{development: true}, "http://localhost:3000", true},
		{"prod_first_party", stubConfig{}, "https://app.homequest.app", true},
		{"prod_extra_origin", stubConfig{extraOrigins: []string{"https://staging.example.com"}}, "https://staging.example.com", true},
		{"prod_unknown_origin", stubConfig{extraOrigins: []string{"https://staging.example.com"}}, "https://evil.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(tt.cfg)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(http.StatusOK)
			}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
