package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode represents API error codes
type ErrorCode int

const (
	// Authentication errors (1xxx)
	ErrCodeUnauthorized ErrorCode = 1001
	ErrCodeTokenExpired ErrorCode = 1002
	ErrCodeTokenInvalid ErrorCode = 1003
	ErrCodeLoginFailed  ErrorCode = 1004

	// Authorization errors (2xxx)
	ErrCodeForbidden         ErrorCode = 2001
	ErrCodeSovereigntyBlock  ErrorCode = 2002
	ErrCodeCommunityMismatch ErrorCode = 2003
	ErrCodeCulturalProtocol  ErrorCode = 2004

	// Resource errors (3xxx)
	ErrCodeNotFound      ErrorCode = 3001
	ErrCodeAlreadyExists ErrorCode = 3002
	ErrCodeConflict      ErrorCode = 3003

	// Validation errors (4xxx)
	ErrCodeValidation         ErrorCode = 4001
	ErrCodeInvalidInput       ErrorCode = 4002
	ErrCodeInvalidCoordinates ErrorCode = 4003
	ErrCodeInvalidBounds      ErrorCode = 4004

	// Internal errors (5xxx)
	ErrCodeInternal ErrorCode = 5001
	ErrCodeDatabase ErrorCode = 5002
)

// ProblemDetails represents RFC 9457 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
	// Extension fields
	Code         ErrorCode `json:"code,omitempty"`
	RequiredRole string    `json:"required_role,omitempty"`
	CurrentRole  string    `json:"current_role,omitempty"`
	Required     []string  `json:"required_permissions,omitempty"`
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WriteJSON writes the problem details as JSON response
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// Common error constructors

func NewUnauthorizedError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/unauthorized",
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: detail,
		Code:   ErrCodeUnauthorized,
	}
}

func NewForbiddenError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/forbidden",
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: detail,
		Code:   ErrCodeForbidden,
	}
}

// NewSovereigntyError signals the data-sovereignty block: the top-level
// system role never touches community data.
func NewSovereigntyError() *ProblemDetails {
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/data-sovereignty",
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: "system administrators cannot access community data",
		Code:   ErrCodeSovereigntyBlock,
	}
}

// NewCommunityMismatchError signals a cross-community access attempt.
// The detail never names the target community's data.
func NewCommunityMismatchError() *ProblemDetails {
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/community-isolation",
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: "access is limited to your own community",
		Code:   ErrCodeCommunityMismatch,
	}
}

// NewInsufficientRoleError reports a role-hierarchy failure with
// required-vs-current context.
func NewInsufficientRoleError(required, current Role) *ProblemDetails {
	return &ProblemDetails{
		Type:         "https://storymap.longhouse.dev/errors/insufficient-role",
		Title:        "Forbidden",
		Status:       http.StatusForbidden,
		Detail:       fmt.Sprintf("requires role %q or higher, current role is %q", required, current),
		Code:         ErrCodeForbidden,
		RequiredRole: string(required),
		CurrentRole:  string(current),
	}
}

// NewInsufficientPermissionsError reports a permission-matrix failure with
// the full required set for diagnosability.
func NewInsufficientPermissionsError(required []string, current Role) *ProblemDetails {
	return &ProblemDetails{
		Type:        "https://storymap.longhouse.dev/errors/insufficient-permissions",
		Title:       "Forbidden",
		Status:      http.StatusForbidden,
		Detail:      fmt.Sprintf("missing required permissions for role %q", current),
		Code:        ErrCodeForbidden,
		Required:    required,
		CurrentRole: string(current),
	}
}

// NewCulturalProtocolError signals a culturally restricted operation
// attempted without the elder override.
func NewCulturalProtocolError() *ProblemDetails {
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/cultural-protocol",
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: "this content is protected by cultural protocol",
		Code:   ErrCodeCulturalProtocol,
	}
}

func NewNotFoundError(resource string) *ProblemDetails {
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/not-found",
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: fmt.Sprintf("%s not found", resource),
		Code:   ErrCodeNotFound,
	}
}

func NewValidationError(errors []FieldError) *ProblemDetails {
	detail := "One or more fields failed validation"
	if len(errors) > 0 {
		detail = fmt.Sprintf("%s: %s", errors[0].Field, errors[0].Message)
		if len(errors) > 1 {
			detail = fmt.Sprintf("%s (and %d more errors)", detail, len(errors)-1)
		}
	}
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/validation",
		Title:  "Validation Error",
		Status: http.StatusUnprocessableEntity,
		Detail: detail,
		Code:   ErrCodeValidation,
		Errors: errors,
	}
}

func NewInvalidCoordinatesError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "latitude must be in [-90, 90] and longitude in [-180, 180]"
	}
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/invalid-coordinates",
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: detail,
		Code:   ErrCodeInvalidCoordinates,
	}
}

func NewInvalidBoundsError() *ProblemDetails {
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/invalid-bounds",
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: "invalid bounding box: north must exceed south, east must exceed west, and all corners must be valid coordinates",
		Code:   ErrCodeInvalidBounds,
	}
}

func NewConflictError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/conflict",
		Title:  "Conflict",
		Status: http.StatusConflict,
		Detail: detail,
		Code:   ErrCodeConflict,
	}
}

func NewInternalError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/internal",
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: detail,
		Code:   ErrCodeInternal,
	}
}

func NewBadRequestError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/bad-request",
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: detail,
		Code:   ErrCodeInvalidInput,
	}
}

func NewMethodNotAllowedError(allowed string) *ProblemDetails {
	return &ProblemDetails{
		Type:   "https://storymap.longhouse.dev/errors/method-not-allowed",
		Title:  "Method Not Allowed",
		Status: http.StatusMethodNotAllowed,
		Detail: fmt.Sprintf("Only %s method is allowed", allowed),
	}
}
