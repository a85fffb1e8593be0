// Package server provides the HTTP REST API for the careers-page builder.
package server

import (
	"fmt"
	"net/http"
)

// ErrSlugTaken indicates the company slug is already registered
type ErrSlugTaken struct {
	Slug string
}

func (e *ErrSlugTaken) Error() string {
	return fmt.Sprintf("company slug already taken: %s", e.Slug)
}

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrAuthenticationRequired indicates a missing or invalid session token
type ErrAuthenticationRequired struct{}

func (e *ErrAuthenticationRequired) Error() string {
	return "authentication required"
}

// ErrForbidden indicates the caller is authenticated but not allowed
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "forbidden"
}

// ErrNotFound indicates the requested resource does not exist
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrSlugTaken, *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrAuthenticationRequired:
		return http.StatusUnauthorized
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
