package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for session failures that carry no backend message.
var (
	// ErrNetwork indicates the call never reached the server or the
	// server was unreachable.
	ErrNetwork = errors.New("network error")

	// ErrTokenExpired indicates a protected call failed specifically
	// because the access token has expired.
	ErrTokenExpired = errors.New("access token has expired")
)

// CredentialError is returned when the server rejected the supplied
// login or signup credentials. Message is surfaced to the user verbatim.
type CredentialError struct {
	Message string
}

func (e *CredentialError) Error() string {
	return e.Message
}

// RefreshFailedError is returned when the refresh token was rejected.
// It is fatal for the session: by the time a caller sees it, the stored
// tokens have been cleared and the session is unauthenticated.
type RefreshFailedError struct {
	Err error
}

func (e *RefreshFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session refresh failed: %v", e.Err)
	}
	return "session refresh failed"
}

func (e *RefreshFailedError) Unwrap() error {
	return e.Err
}

// ForbiddenError is returned when the caller is authenticated but lacks
// permission for the operation. It never triggers a token refresh.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "forbidden"
}

// APIError is a structured error returned by the backend for failures
// outside the session taxonomy (validation, not found, and so on).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsCredential reports whether err is a credential rejection.
func IsCredential(err error) bool {
	var ce *CredentialError
	return errors.As(err, &ce)
}

// IsRefreshFailed reports whether err is a fatal refresh failure.
func IsRefreshFailed(err error) bool {
	var re *RefreshFailedError
	return errors.As(err, &re)
}

// IsForbidden reports whether err is a role-based denial.
func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe)
}
