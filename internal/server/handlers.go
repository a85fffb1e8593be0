// Package server provides the HTTP REST API for the careers-page builder.
package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/careers-builder/internal/db"
	"github.com/jonathan/careers-builder/internal/policy"
	"github.com/jonathan/careers-builder/internal/server/middleware"
)

// caller returns the authenticated caller from the request context, or nil
// for anonymous requests.
func (s *Server) caller(r *http.Request) *policy.Caller {
	c, err := middleware.GetCaller(r)
	if err != nil {
		return nil
	}
	return c
}

// serviceError writes a typed service error with its mapped status.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// authorize runs the policy check for a slug-scoped operation. On denial it
// writes the error response and returns ok=false. No lookup happens here, so
// a caller probing another tenant's slug learns nothing about its existence.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, slug string, action policy.Action) (*policy.Caller, bool) {
	caller := s.caller(r)

	switch policy.Evaluate(caller, slug, action) {
	case policy.Allow:
		return caller, true
	case policy.DenyUnauthenticated:
		s.serviceError(w, &ErrAuthenticationRequired{})
	default:
		s.serviceError(w, &ErrForbidden{})
	}
	return nil, false
}

// loadCompany fetches the company for an already-authorized request, writing
// the error response on failure.
func (s *Server) loadCompany(w http.ResponseWriter, r *http.Request, slug string) (*db.Company, bool) {
	company, err := s.db.GetCompanyBySlug(r.Context(), slug)
	if err != nil {
		s.logger.Error("failed to load company", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	if company == nil {
		s.serviceError(w, &ErrNotFound{Resource: "company"})
		return nil, false
	}
	return company, true
}

// authorizeCompany combines the policy check and the company lookup, in that
// order.
func (s *Server) authorizeCompany(w http.ResponseWriter, r *http.Request, slug string, action policy.Action) (*policy.Caller, *db.Company, bool) {
	caller, ok := s.authorize(w, r, slug, action)
	if !ok {
		return nil, nil, false
	}
	company, ok := s.loadCompany(w, r, slug)
	if !ok {
		return nil, nil, false
	}
	return caller, company, true
}

// callerCompany loads the company the caller belongs to, for routes that are
// not slug-scoped (comments, bulk upload).
func (s *Server) callerCompany(w http.ResponseWriter, r *http.Request, action policy.Action) (*policy.Caller, *db.Company, bool) {
	caller := s.caller(r)
	if caller == nil {
		s.serviceError(w, &ErrAuthenticationRequired{})
		return nil, nil, false
	}
	return s.authorizeCompany(w, r, caller.CompanySlug, action)
}
