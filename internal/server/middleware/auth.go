// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/careers-builder/internal/policy"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// callerKey is the context key for storing the authenticated caller.
const callerKey ContextKey = "caller"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (CallerGetter, error)
}

// CallerGetter is an interface for extracting the caller from token claims.
type CallerGetter interface {
	Caller() *policy.Caller
}

// AuthMiddleware creates middleware that validates JWT tokens and adds the
// resolved caller to the request context. Requests without a valid token are
// rejected with 401.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := resolveCaller(jwtService, r)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveCaller extracts and validates the bearer token, returning the caller
// it identifies. Handles a case-insensitive "Bearer" prefix.
func resolveCaller(jwtService TokenValidator, r *http.Request) (*policy.Caller, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, false
	}

	claims, err := jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, false
	}

	return claims.Caller(), true
}

// GetCaller extracts the authenticated caller from the request context.
func GetCaller(r *http.Request) (*policy.Caller, error) {
	caller, ok := r.Context().Value(callerKey).(*policy.Caller)
	if !ok || caller == nil {
		return nil, fmt.Errorf("caller not found in request context")
	}
	return caller, nil
}

// CallerKey returns the context key for the caller (for testing purposes).
func CallerKey() ContextKey {
	return callerKey
}

// WithCaller returns a context carrying the given caller (for testing purposes).
func WithCaller(ctx context.Context, caller *policy.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}
