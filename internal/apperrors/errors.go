// Package apperrors defines the error kinds shared by every layer.
// Repositories and services wrap one of these sentinels with context;
// the handler layer maps the kind to an HTTP status exactly once.
package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

// Public returns the message safe to show a caller. Known kinds keep
// their wrapped message; anything else collapses to a generic failure
// so internal detail never leaks.
func Public(err error) string {
	for _, kind := range []error{ErrNotFound, ErrUnauthorized, ErrBadRequest, ErrConflict} {
		if errors.Is(err, kind) {
			return err.Error()
		}
	}
	return "internal server error"
}

// Status maps an error kind to the HTTP status the boundary returns.
// Unrecognized errors are internal failures.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
