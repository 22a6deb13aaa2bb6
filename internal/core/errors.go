package core

import "fmt"

type ErrorCode string

const (
	ErrInvalidPayload       ErrorCode = "INVALID_PAYLOAD"
	ErrUnsupportedEventType ErrorCode = "UNSUPPORTED_EVENT_TYPE"
	ErrUnsupportedAction    ErrorCode = "UNSUPPORTED_ACTION"
	ErrMalformedPayload     ErrorCode = "MALFORMED_PAYLOAD"
	ErrStorageUnavailable   ErrorCode = "STORAGE_UNAVAILABLE"
	ErrInternal             ErrorCode = "INTERNAL"
)

// HTTPStatus returns the HTTP status code for this error code.
func (e ErrorCode) HTTPStatus() int {
	switch e {
	case ErrInvalidPayload, ErrUnsupportedEventType, ErrUnsupportedAction, ErrMalformedPayload:
		return 400
	case ErrStorageUnavailable:
		return 503
	default:
		return 500
	}
}

// BodyKey returns the JSON key the error message is reported under.
// Webhook senders already parse "message" for unsupported events and "error"
// for everything else.
func (e ErrorCode) BodyKey() string {
	switch e {
	case ErrUnsupportedEventType, ErrUnsupportedAction:
		return "message"
	default:
		return "error"
	}
}

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
