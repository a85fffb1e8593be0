package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestErrSlugTaken(t *testing.T) {
	err := &ErrSlugTaken{Slug: "acme"}
	assert.Equal(t, "company slug already taken: acme", err.Error())
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestErrEmailAlreadyExists(t *testing.T) {
	err := &ErrEmailAlreadyExists{Email: "test@example.com"}
	assert.Equal(t, "email already registered: test@example.com", err.Error())
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestErrInvalidCredentials(t *testing.T) {
	err := &ErrInvalidCredentials{}
	assert.Equal(t, "invalid email or password", err.Error())
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(err))
}

func TestErrAuthenticationRequired(t *testing.T) {
	err := &ErrAuthenticationRequired{}
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(err))
}

func TestErrForbidden(t *testing.T) {
	err := &ErrForbidden{}
	assert.Equal(t, http.StatusForbidden, HTTPStatus(err))
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", (&ErrNotFound{}).Error())
	assert.Equal(t, "company not found", (&ErrNotFound{Resource: "company"}).Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrNotFound{}))
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "email", Message: "invalid format"}
	assert.Equal(t, "validation error: email - invalid format", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestServiceError_WritesMappedStatus(t *testing.T) {
	s := &Server{logger: zap.NewNop()}

	w := httptest.NewRecorder()
	s.serviceError(w, &ErrForbidden{})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden")

	w = httptest.NewRecorder()
	s.serviceError(w, &ErrNotFound{Resource: "company"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "company not found")
}
