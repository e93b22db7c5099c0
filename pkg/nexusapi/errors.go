// Package nexusapi holds the wire types of the PixelForge Nexus API: request
// and response bodies plus the error envelope every failure is reported with.
// It is shared between the HTTP handlers and API consumers.
package nexusapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pixelforge/nexus/pkg/httpx"
)

// Error codes returned in the "error" field of the envelope.
const (
	ErrorCodeInvalidInput       = "invalid_input"
	ErrorCodeConflict           = "conflict"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidMFACode     = "invalid_mfa_code"
	ErrorCodeMFANotReady        = "mfa_not_ready"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeAlreadyAssigned    = "already_assigned"
	ErrorCodeServerError        = "server_error"
)

// APIError is the uniform error envelope. It implements the error interface
// so handlers and clients can both use it.
type APIError struct {
	// StatusCode is the HTTP status this error is written with.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable message. Credential and MFA failures
	// deliberately never say which check failed.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this error to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// WithDescription returns a copy with a more specific message but the same
// code and status.
func (e *APIError) WithDescription(desc string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Description: desc}
}

var (
	// ErrInvalidInput covers missing or malformed request fields.
	ErrInvalidInput = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidInput,
		Description: "the request is missing or has malformed fields",
	}

	// ErrConflict covers uniqueness violations (username, email, project name).
	ErrConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "a record with these details already exists",
	}

	// ErrInvalidCredentials is returned for a bad username OR a bad password,
	// with an identical message, so accounts cannot be enumerated.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid credentials",
	}

	// ErrInvalidMFACode is returned when a submitted TOTP code fails.
	ErrInvalidMFACode = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidMFACode,
		Description: "invalid MFA code",
	}

	// ErrMFANotReady is returned when verification is attempted before a
	// secret has been generated.
	ErrMFANotReady = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeMFANotReady,
		Description: "MFA secret has not been generated yet",
	}

	// ErrNotFound covers missing users, projects, documents and files.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource was not found",
	}

	// ErrForbidden is the uniform authorization denial.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "you do not have permission to perform this action",
	}

	// ErrAlreadyAssigned is returned when a developer is assigned to a
	// project they are already on.
	ErrAlreadyAssigned = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeAlreadyAssigned,
		Description: "developer is already assigned to this project",
	}

	// ErrServerError covers unexpected storage or internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)
