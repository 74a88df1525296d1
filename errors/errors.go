// Package errors provides an API for errors across the application.
package errors

// RequestError carries the HTTP status code a handler should respond with.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}
