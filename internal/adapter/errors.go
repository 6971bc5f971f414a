package adapter

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthorized    = errors.New("client unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrRateLimited     = errors.New("rate limited")
	ErrServerError     = errors.New("server error")
	ErrTimeout         = errors.New("request timed out")
	ErrNetwork         = errors.New("network error")
	ErrMalformed       = errors.New("malformed response")
	ErrCanceled        = errors.New("request canceled")
	ErrUnknown         = errors.New("unknown error")
	ErrInvalidBaseURL  = errors.New("invalid adapter base url")
	ErrUploadNoContent = errors.New("upload has no content")
)

// Kind classifies an [APIError].
type Kind int

const (
	KindUnknown Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindValidation
	KindRateLimited
	KindServerError
	KindTimeout
	KindNetwork
	KindMalformed
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate_limited"
	case KindServerError:
		return "server_error"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindMalformed:
		return "malformed"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindBadRequest:
		return ErrBadRequest
	case KindUnauthorized:
		return ErrUnauthorized
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindRateLimited:
		return ErrRateLimited
	case KindServerError:
		return ErrServerError
	case KindTimeout:
		return ErrTimeout
	case KindNetwork:
		return ErrNetwork
	case KindMalformed:
		return ErrMalformed
	case KindCanceled:
		return ErrCanceled
	default:
		return ErrUnknown
	}
}

// defaultMessage is shown when the backend did not explain the failure.
func (k Kind) defaultMessage() string {
	switch k {
	case KindBadRequest:
		return "Invalid request. Please check your input."
	case KindUnauthorized:
		return "Session expired. Please sign in again."
	case KindForbidden:
		return "You do not have permission to perform this action."
	case KindNotFound:
		return "The requested resource was not found."
	case KindValidation:
		return "Validation failed. Please check the highlighted fields."
	case KindRateLimited:
		return "Too many requests. Please wait a moment and try again."
	case KindServerError:
		return "Server error. Please try again later."
	case KindTimeout:
		return "Request timed out. Please try again."
	case KindNetwork:
		return "Network error. Please check your connection."
	case KindMalformed:
		return "Unexpected response from the server. Please try again later."
	case KindCanceled:
		return "Request canceled."
	default:
		return "Something went wrong. Please try again."
	}
}

// APIError is the classified failure of one adapter call. It matches the
// package sentinel of its kind with [errors.Is].
type APIError struct {
	Kind   Kind
	Status int
	// Message is the text the backend sent, if any.
	Message string
	// RetryAfter is parsed from the Retry-After header of a 429 response.
	RetryAfter time.Duration
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.sentinel().Error()
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("http %d: %s", e.Status, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// UserMessage returns the text suitable for a notification. The backend's
// own message wins over the generic one of the kind.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.defaultMessage()
}

// Retryable reports whether repeating the same call may succeed.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindRateLimited, KindServerError, KindTimeout, KindNetwork, KindMalformed:
		return true
	default:
		return false
	}
}

// AsAPIError unwraps err into an [APIError].
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// UserMessage returns the notification text for any error: the classified
// message for an [APIError], a generic one otherwise.
func UserMessage(err error) string {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.UserMessage()
	}
	return KindUnknown.defaultMessage()
}
