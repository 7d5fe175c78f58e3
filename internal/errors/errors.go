package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func New(message string, statusCode int) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: statusCode}
}

func Validation(message string) *ErrorWithStatusCode {
	return New(message, http.StatusBadRequest)
}

func Unauthenticated(message string) *ErrorWithStatusCode {
	return New(message, http.StatusUnauthorized)
}

func Forbidden(message string) *ErrorWithStatusCode {
	return New(message, http.StatusForbidden)
}

func NotFound(message string) *ErrorWithStatusCode {
	return New(message, http.StatusNotFound)
}

func Conflict(message string) *ErrorWithStatusCode {
	return New(message, http.StatusConflict)
}

// StatusCode returns the http status carried by err, or 500 for plain errors.
func StatusCode(err error) int {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}
