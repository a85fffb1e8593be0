package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careers-builder/internal/policy"
)

type stubValidator struct {
	caller *policy.Caller
	err    error
}

type stubClaims struct{ caller *policy.Caller }

func (c *stubClaims) Caller() *policy.Caller { return c.caller }

func (v *stubValidator) ValidateToken(string) (CallerGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &stubClaims{caller: v.caller}, nil
}

func runAuth(t *testing.T, validator TokenValidator, authHeader string) (*httptest.ResponseRecorder, *policy.Caller) {
	t.Helper()

	var captured *policy.Caller
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := GetCaller(r)
		require.NoError(t, err)
		captured = c
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/companies/acme", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	want := &policy.Caller{UserID: uuid.New(), Email: "jane@acme.test", CompanySlug: "acme", Role: "ADMIN"}

	rec, got := runAuth(t, &stubValidator{caller: want}, "Bearer token123")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, want, got)
}

func TestAuthMiddleware_CaseInsensitiveBearer(t *testing.T) {
	want := &policy.Caller{CompanySlug: "acme"}

	rec, _ := runAuth(t, &stubValidator{caller: want}, "bearer token123")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec, _ := runAuth(t, &stubValidator{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	rec, _ := runAuth(t, &stubValidator{}, "token-without-scheme")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec, _ := runAuth(t, &stubValidator{err: errors.New("expired")}, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetCaller_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetCaller(req)
	assert.Error(t, err)
}

func TestWithCaller(t *testing.T) {
	want := &policy.Caller{CompanySlug: "acme"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithCaller(req.Context(), want))

	got, err := GetCaller(req)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
