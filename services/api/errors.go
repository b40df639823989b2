package apisvc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrUnauthorized matches any *Error with a 401 status.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is an error response of the backend.
// The backend may identify the error with a Code; Message (or ErrorText) is free text.
type Error struct {
	Status    int               `json:"-"`
	Code      string            `json:"code,omitempty"`
	Message   string            `json:"message,omitempty"`
	ErrorText string            `json:"error,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	if msg := e.ServerMessage(); msg != "" {
		return fmt.Sprintf("api: %d %s", e.Status, msg)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// ServerMessage returns the free-text message sent by the backend, if any.
func (e *Error) ServerMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.ErrorText
}

// NetworkError is returned when no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "api: no response: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status of an API error, or 0 when `err` carries none.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }
func IsNotFound(err error) bool     { return StatusOf(err) == http.StatusNotFound }

func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
