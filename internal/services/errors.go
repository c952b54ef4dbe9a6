package services

import "errors"

// ErrorKind classifies a service failure so callers can map it to an HTTP
// status without inspecting message text.
type ErrorKind string

const (
	KindInvalidInput   ErrorKind = "invalid_input"
	KindMissingFields  ErrorKind = "missing_fields"
	KindDuplicateEmail ErrorKind = "duplicate_email"
	KindEmailInUse     ErrorKind = "email_in_use"
	KindNotFound       ErrorKind = "not_found"
	KindUnexpected     ErrorKind = "unexpected"
)

// ServiceError is a tagged business error returned by service operations.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, message string) *ServiceError {
	return &ServiceError{Kind: kind, Message: message}
}

// wrapUnexpected tags an unclassified persistence failure.
func wrapUnexpected(err error) *ServiceError {
	return &ServiceError{Kind: KindUnexpected, Message: err.Error(), cause: err}
}

// Kind extracts the error kind, defaulting to KindUnexpected for errors
// that did not originate from a service operation.
func Kind(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err is a service error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return Kind(err) == kind
}
