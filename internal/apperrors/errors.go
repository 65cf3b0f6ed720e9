// Package apperrors defines the service error taxonomy and its HTTP mapping.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ValidationError reports missing or invalid required input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an absent order, product or tracking number.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NotFoundf builds a NotFoundError.
func NotFoundf(format string, args ...interface{}) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError reports a unique-constraint violation, notably a tracking
// number collision. Callers must retry; this layer does not regenerate.
type ConflictError struct {
	Msg string
	Err error
}

func (e *ConflictError) Error() string { return e.Msg }
func (e *ConflictError) Unwrap() error { return e.Err }

// Conflict wraps a constraint violation.
func Conflict(err error, msg string) error {
	return &ConflictError{Msg: msg, Err: err}
}

// AuthError reports a missing, invalid or expired admin token.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// Authf builds an AuthError.
func Authf(format string, args ...interface{}) error {
	return &AuthError{Msg: fmt.Sprintf(format, args...)}
}

// StoreError wraps any other persistence failure.
type StoreError struct {
	Msg string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps a persistence error.
func Store(err error, msg string) error {
	return &StoreError{Msg: msg, Err: err}
}

// FiberHandler translates the taxonomy into HTTP responses. Wired into
// fiber.Config.ErrorHandler so handlers and services only return errors.
func FiberHandler(c *fiber.Ctx, err error) error {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		conflict   *ConflictError
		auth       *AuthError
		fiberErr   *fiber.Error
	)

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Msg})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFound.Msg})
	case errors.As(err, &auth):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": auth.Msg})
	case errors.As(err, &conflict):
		// Surfaced as a server error: the caller retries, we do not.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": conflict.Msg})
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
