package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks a transport-level failure: no response was received.
	// Callers render one generic message for it; nothing is retried.
	ErrNetwork = errors.New("network unreachable")

	// ErrUnauthorized marks a 401. By the time a caller sees it the
	// persisted token and session state have already been cleared.
	ErrUnauthorized = errors.New("session is invalid, please login again")
)

// APIError is a non-401 4xx/5xx response, carrying the server-provided
// message when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// serverMessage digs a human-readable message out of an error response body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
