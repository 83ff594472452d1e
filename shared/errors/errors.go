package errors

import "errors"

// ErrNotFound is returned by storages and services when a lookup by id has no match.
// It is an expected outcome, handlers map it to 404.
var ErrNotFound = errors.New("not found")

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	Details    []string
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func BadRequest(message string, details ...string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: 400, Details: details}
}
