package errors

import (
	"errors"
	"net/http"
)

// Error categories. Every domain error wraps exactly one of these.
var (
	// ErrValidation marks input rejected before any store mutation.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an unknown user or item.
	ErrNotFound = errors.New("not found")
	// ErrAuthorization marks a role mismatch for a privileged operation.
	ErrAuthorization = errors.New("not authorized")
	// ErrStorage marks an unavailable persistence layer.
	ErrStorage = errors.New("storage unavailable")
)

var (
	// ErrInvalidRole is returned when signup names a role that cannot be created.
	ErrInvalidRole = newKindError(ErrValidation, "invalid role")
	// ErrInvalidInput is returned for malformed request values.
	ErrInvalidInput = newKindError(ErrValidation, "invalid input")
	// ErrUserNotFound is returned when no account has the given username.
	ErrUserNotFound = newKindError(ErrNotFound, "user not found")
	// ErrItemNotFound is returned when no catalog item has the given id.
	ErrItemNotFound = newKindError(ErrNotFound, "item not found")
	// ErrReportNotFound is returned when no stored report has the given id.
	ErrReportNotFound = newKindError(ErrNotFound, "report not found")
	// ErrUnauthorized is returned when the acting account lacks the required role.
	ErrUnauthorized = newKindError(ErrAuthorization, "unauthorized")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("incorrect password")
)

type kindError struct {
	msg  string
	kind error
}

func newKindError(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports StorageError as an ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// Storage wraps err as a StorageError for op. A nil err stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAuthorization):
		return NewHTTPError(http.StatusForbidden, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrItemNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ITEM_NOT_FOUND")
	case errors.Is(err, ErrReportNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REPORT_NOT_FOUND")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
