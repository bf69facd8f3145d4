package core

import "fmt"

type ErrorCode string

const (
	ErrBadRequest       ErrorCode = "AUDIT_BAD_REQUEST"
	ErrNotFound         ErrorCode = "AUDIT_NOT_FOUND"
	ErrMethodNotAllowed ErrorCode = "AUDIT_METHOD_NOT_ALLOWED"
	ErrPayloadTooLarge  ErrorCode = "AUDIT_PAYLOAD_TOO_LARGE"
	ErrInternal         ErrorCode = "AUDIT_INTERNAL"
)

// Client-facing messages.
const (
	MsgNotFound         = "Not found"
	MsgMethodNotAllowed = "Method not allowed"
	MsgInvalidJSON      = "Invalid JSON"
	MsgMissingFields    = "Missing required fields"
	MsgTooLarge         = "Request body too large"
	MsgInternal         = "Internal server error"
)

// HTTPStatus returns the HTTP status code for this error code.
func (e ErrorCode) HTTPStatus() int {
	switch e {
	case ErrBadRequest:
		return 400
	case ErrNotFound:
		return 404
	case ErrMethodNotAllowed:
		return 405
	case ErrPayloadTooLarge:
		return 413
	default:
		return 500
	}
}

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Missing []string  `json:"missing,omitempty"`
}

func (e *AppError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: %s %v", e.Code, e.Message, e.Missing)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// NewMissingFieldsError reports the required keys absent from an event.
func NewMissingFieldsError(missing []string) *AppError {
	return &AppError{Code: ErrBadRequest, Message: MsgMissingFields, Missing: missing}
}
