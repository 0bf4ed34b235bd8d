// Package apperr defines the service's error taxonomy and its mapping to
// HTTP status codes. Services return typed errors; the fiber error handler
// calls Status at the boundary. Store faults pass through untyped and map
// to 500 with the raw message.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ValidationError marks bad input (upload type/size, self-follow). Maps to 400.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

func Validation(format string, args ...any) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a single-row lookup that found nothing. Maps to 404.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string { return e.Detail }

func NotFound(format string, args ...any) error {
	return &NotFoundError{Detail: fmt.Sprintf(format, args...)}
}

// ConflictError marks a violated uniqueness constraint (duplicate follow or
// favorite). Surfaced as a client error, not a server fault. Maps to 400.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string { return e.Detail }

func Conflict(format string, args ...any) error {
	return &ConflictError{Detail: fmt.Sprintf(format, args...)}
}

// FromDuplicate converts a store error into a ConflictError when it carries
// GORM's translated unique-constraint signal, and returns it unchanged
// otherwise. Requires TranslateError on the gorm config.
func FromDuplicate(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict(format, args...)
	}
	return err
}

// Status maps an error to its HTTP status code and client-facing detail.
func Status(err error) (int, string) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest, ve.Detail
	}
	var ce *ConflictError
	if errors.As(err, &ce) {
		return fiber.StatusBadRequest, ce.Detail
	}
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		return fiber.StatusNotFound, nfe.Detail
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound, err.Error()
	}
	return fiber.StatusInternalServerError, err.Error()
}
