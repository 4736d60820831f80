package service

import "net/http"

// Error is a user-facing failure: an HTTP status plus a human-readable
// Spanish title, optionally with per-field details. The API layer
// renders it as {"title": ...}; anything that is not an *Error never
// leaves the service boundary unwrapped.
type Error struct {
	Status int
	Title  string
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Title
}

func BadRequest(title string) *Error {
	return &Error{Status: http.StatusBadRequest, Title: title}
}

func Unauthorized(title string) *Error {
	return &Error{Status: http.StatusUnauthorized, Title: title}
}

func Forbidden(title string) *Error {
	return &Error{Status: http.StatusForbidden, Title: title}
}

func NotFound(title string) *Error {
	return &Error{Status: http.StatusNotFound, Title: title}
}

func Conflict(title string) *Error {
	return &Error{Status: http.StatusConflict, Title: title}
}

func ServerError(title string) *Error {
	return &Error{Status: http.StatusInternalServerError, Title: title}
}
