// Package apperr defines the typed errors handlers and services return.
// The middleware error handler translates them into status codes and
// {error, message} JSON bodies.
package apperr

import "github.com/gofiber/fiber/v2"

type Error struct {
	Status  int
	Code    string
	Message string
	Meta    map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

// WithMeta attaches an extra key to the serialized error body.
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = map[string]interface{}{}
	}
	e.Meta[key] = value
	return e
}

// Body returns the JSON payload for the error response.
func (e *Error) Body() fiber.Map {
	body := fiber.Map{
		"error":   e.Code,
		"message": e.Message,
	}
	for k, v := range e.Meta {
		body[k] = v
	}
	return body
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Validation(message string) *Error {
	return New(fiber.StatusBadRequest, "Validation error", message)
}

func Unauthorized(code, message string) *Error {
	return New(fiber.StatusUnauthorized, code, message)
}

func Conflict(code, message string) *Error {
	return New(fiber.StatusConflict, code, message)
}

func NotFound(code, message string) *Error {
	return New(fiber.StatusNotFound, code, message)
}

// Dependency reports a delete blocked by rows that still reference the target.
func Dependency(code, message string, gamesCount int64) *Error {
	return New(fiber.StatusBadRequest, code, message).WithMeta("gamesCount", gamesCount)
}

func Internal(message string) *Error {
	return New(fiber.StatusInternalServerError, "Internal server error", message)
}
