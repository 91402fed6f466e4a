// Package apperr carries an HTTP status alongside a message so
// internal/httpapi can render {"message": ...} with the right code without
// string-matching error text. Grounded in original_source's
// AppError{code, message}.
package apperr

import (
	"fmt"
	"net/http"
)

// Error is a status-carrying application error.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// FieldRequired is the 400 returned when a query parameter is missing.
func FieldRequired(name string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: name + " is required."}
}

// RoomAlreadyExists is the 400 returned by CreateRoom on a duplicate uid.
func RoomAlreadyExists() *Error {
	return &Error{Status: http.StatusBadRequest, Message: "Room is not available"}
}

// RoomNotFound is the 404 returned when a uid has no registered room.
func RoomNotFound() *Error {
	return &Error{Status: http.StatusNotFound, Message: "Room not found"}
}

// SecretMismatch is the 401 returned when an HTTP moderator call presents
// the wrong secret.
func SecretMismatch() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "Secret does not match"}
}

// NotFound is a generic 404 carrying message, used for a missing photo and a
// malformed query string. Unmatched routes are answered by httpapi's own
// writeNotFound instead.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}
