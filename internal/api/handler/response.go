package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Envelope is the canonical response shape for every endpoint, success and
// failure alike: {timestamp, status_code, status, message, reason?, data?}.
type Envelope struct {
	Timestamp  string `json:"timestamp"`
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Reason     string `json:"reason,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// Success writes an envelope-wrapped JSON response.
func Success(c echo.Context, statusCode int, message string, data any) error {
	return c.JSON(statusCode, Envelope{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		StatusCode: statusCode,
		Status:     StatusPhrase(statusCode),
		Message:    message,
		Data:       data,
	})
}

// ErrorEnvelope builds the envelope for a failed request. The central error
// handler is the only writer of these.
func ErrorEnvelope(statusCode int, message, reason string) Envelope {
	return Envelope{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		StatusCode: statusCode,
		Status:     StatusPhrase(statusCode),
		Message:    message,
		Reason:     reason,
	}
}

// StatusPhrase converts an HTTP status code to an uppercase phrase,
// e.g. 404 → NOT_FOUND.
func StatusPhrase(statusCode int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(statusCode), " ", "_"))
}
