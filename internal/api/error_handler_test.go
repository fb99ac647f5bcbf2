package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quickblog/blog-api/internal/api/handler"
	"github.com/quickblog/blog-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, handler.Envelope) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var env handler.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec.Code, env
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"missing header", domain.ErrMissingAuthHeader, http.StatusUnauthorized},
		{"invalid header", domain.ErrInvalidAuthHeader, http.StatusUnauthorized},
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized},
		{"bad signature", domain.ErrTokenSignature, http.StatusUnauthorized},
		{"malformed token", domain.ErrTokenMalformed, http.StatusUnauthorized},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"post not found", domain.ErrPostNotFound, http.StatusNotFound},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"db timeout", domain.ErrDatabaseTimeout, http.StatusInternalServerError},
		{"db unavailable", domain.ErrDatabaseUnavailable, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected status %d, got %d", tc.code, code)
			}
			if env.StatusCode != tc.code {
				t.Fatalf("envelope status_code %d, want %d", env.StatusCode, tc.code)
			}
			if env.Status != handler.StatusPhrase(tc.code) {
				t.Fatalf("envelope status %q, want %q", env.Status, handler.StatusPhrase(tc.code))
			}
		})
	}
}

func TestErrorHandler_WrappedErrors(t *testing.T) {
	code, env := renderError(t, fmt.Errorf("post with id 42: %w", domain.ErrPostNotFound))
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if env.Reason != "post with id 42: post not found" {
		t.Fatalf("unexpected reason: %q", env.Reason)
	}
}

func TestErrorHandler_NoUserEnumeration(t *testing.T) {
	// Wrong password and unrecognized hash must be indistinguishable to the
	// client.
	_, fromMismatch := renderError(t, domain.ErrInvalidCredentials)
	_, fromHash := renderError(t, domain.ErrUnknownHash)

	if fromMismatch.Reason != fromHash.Reason || fromMismatch.Message != fromHash.Message {
		t.Fatalf("wording diverged: %+v vs %+v", fromMismatch, fromHash)
	}
	if fromMismatch.Reason != "Invalid credentials provided!" {
		t.Fatalf("unexpected reason: %q", fromMismatch.Reason)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, env := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "field is required"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if env.Reason != "field is required" {
		t.Fatalf("unexpected reason: %q", env.Reason)
	}
}

func TestErrorHandler_MasksStorageVocabulary(t *testing.T) {
	leaky := []error{
		errors.New("E11000 duplicate key error collection: blog.users"),
		errors.New("mongo: connection refused"),
		errors.New("cannot decode bson document"),
	}
	for _, err := range leaky {
		code, env := renderError(t, err)
		if code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", code)
		}
		if env.Reason != "An unexpected error occurred. Please try again later." {
			t.Fatalf("storage detail leaked: %q", env.Reason)
		}
	}

	// Plain unexpected errors pass through unmasked.
	_, env := renderError(t, errors.New("boom"))
	if env.Reason != "boom" {
		t.Fatalf("unexpected reason: %q", env.Reason)
	}
}
