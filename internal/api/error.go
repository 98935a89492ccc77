package api

import (
	"errors"
	"fmt"
)

// StatusClientFailure is the status carried by errors that happened before
// any HTTP response was received.
const StatusClientFailure = -1

type ErrorKind string

const (
	KindTransport  ErrorKind = "transport"
	KindURL        ErrorKind = "url"
	KindEncoding   ErrorKind = "encoding"
	KindServer     ErrorKind = "server"
	KindHTTP       ErrorKind = "http"
	KindDecoding   ErrorKind = "decoding"
	KindValidation ErrorKind = "validation"
)

const (
	MessageUnknownError   = "Unknown error"
	MessageDecodingFailed = "Decoding failed"
	MessageInvalidURL     = "Invalid URL"
	MessageEncodingFailed = "Encoding failed"
	MessageNetworkFailed  = "Network request failed"
)

// Error is the only error type returned by the client and the domain
// services. Message is always set and safe to show to a user.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error [%d]: %s", e.Kind, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewServerError(status int, message string) *Error {
	if message == "" {
		message = MessageUnknownError
	}
	return &Error{Kind: KindServer, Status: status, Message: message}
}

func NewHTTPError(status int) *Error {
	return &Error{Kind: KindHTTP, Status: status, Message: fmt.Sprintf("HTTP %d", status)}
}

func NewDecodingError(status int) *Error {
	return &Error{Kind: KindDecoding, Status: status, Message: MessageDecodingFailed}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Status: StatusClientFailure, Message: message}
}

func newURLError(err error) *Error {
	return &Error{Kind: KindURL, Status: StatusClientFailure, Message: MessageInvalidURL, Err: err}
}

func newEncodingError(err error) *Error {
	return &Error{Kind: KindEncoding, Status: StatusClientFailure, Message: MessageEncodingFailed, Err: err}
}

func newTransportError(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Status:  StatusClientFailure,
		Message: fmt.Sprintf("%s: %s", MessageNetworkFailed, err),
		Err:     err,
	}
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == kind
}

// MessageOf returns the user facing message of err, or fallback when err
// did not come from the client.
func MessageOf(err error, fallback string) string {
	if apiErr, ok := AsError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
