package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/careers-builder/internal/page"
	"github.com/jonathan/careers-builder/internal/policy"
	"github.com/jonathan/careers-builder/internal/publish"
	"github.com/jonathan/careers-builder/internal/types"
)

// handlePublish freezes the current draft into a snapshot and flips the page
// live. The request body may carry a draft bundle, which is saved first so the
// editor's latest state is what gets captured; an empty body publishes the
// persisted draft as-is. Only visible sections and active jobs are captured;
// later draft edits do not affect the public page until the next publish.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	_, company, ok := s.authorizeCompany(w, r, slug, policy.ActionEditDraft)
	if !ok {
		return
	}
	ctx := r.Context()

	var req types.SaveRequest
	switch err := json.NewDecoder(r.Body).Decode(&req); {
	case errors.Is(err, io.EOF):
		// No bundle attached; publish the persisted draft.
	case err != nil:
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	default:
		if err := req.Validate(); err != nil {
			s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
			return
		}
		if _, ok := s.applyBundle(w, r, slug, company, &req); !ok {
			return
		}
	}

	theme, err := s.db.GetTheme(ctx, company.ID)
	if err != nil {
		s.logger.Error("failed to load theme for publish", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to publish")
		return
	}
	sections, err := s.db.ListSections(ctx, company.ID, true)
	if err != nil {
		s.logger.Error("failed to load sections for publish", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to publish")
		return
	}
	jobs, err := s.db.ListJobs(ctx, company.ID, true)
	if err != nil {
		s.logger.Error("failed to load jobs for publish", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to publish")
		return
	}

	snapshot, err := publish.Capture(theme, sections, jobs)
	if err != nil {
		s.logger.Error("snapshot capture failed", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to capture snapshot")
		return
	}

	if err := s.db.SetPublished(ctx, company.ID, snapshot); err != nil {
		s.logger.Error("failed to store snapshot", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to publish")
		return
	}

	if err := s.pageCache.InvalidatePage(ctx, slug); err != nil {
		// The cache entry expires on its own TTL; publishing still succeeded.
		s.logger.Warn("failed to invalidate page cache", zap.String("slug", slug), zap.Error(err))
	}

	updated, err := s.db.GetCompanyBySlug(ctx, slug)
	if err != nil || updated == nil {
		s.logger.Error("failed to reload company after publish", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to publish")
		return
	}

	s.logger.Info("page published", zap.String("slug", slug))
	s.jsonResponse(w, http.StatusOK, types.PublishResponse{
		IsPublished:     updated.IsPublished,
		LastPublishedAt: updated.LastPublishedAt,
	})
}

// handleUnpublish takes the page offline. The snapshot and publish timestamp
// are retained, so re-publishing without edits restores the same page.
func (s *Server) handleUnpublish(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	_, company, ok := s.authorizeCompany(w, r, slug, policy.ActionEditDraft)
	if !ok {
		return
	}
	ctx := r.Context()

	if err := s.db.SetUnpublished(ctx, company.ID); err != nil {
		s.logger.Error("failed to unpublish", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to unpublish")
		return
	}

	if err := s.pageCache.InvalidatePage(ctx, slug); err != nil {
		s.logger.Warn("failed to invalidate page cache", zap.String("slug", slug), zap.Error(err))
	}

	s.logger.Info("page unpublished", zap.String("slug", slug))
	s.jsonResponse(w, http.StatusOK, types.PublishResponse{
		IsPublished:     false,
		LastPublishedAt: company.LastPublishedAt,
	})
}

// handlePreview renders the live draft exactly as the public page would show
// it after a publish: visible sections and active jobs only. Never cached and
// never served to anonymous callers.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	_, company, ok := s.authorizeCompany(w, r, slug, policy.ActionEditDraft)
	if !ok {
		return
	}
	ctx := r.Context()

	theme, err := s.db.GetTheme(ctx, company.ID)
	if err != nil {
		s.logger.Error("failed to load theme for preview", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to render preview")
		return
	}
	sections, err := s.db.ListSections(ctx, company.ID, true)
	if err != nil {
		s.logger.Error("failed to load sections for preview", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to render preview")
		return
	}
	jobs, err := s.db.ListJobs(ctx, company.ID, true)
	if err != nil {
		s.logger.Error("failed to load jobs for preview", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to render preview")
		return
	}

	model := page.Build(company, theme, sections, jobs, jobFilterFromQuery(r))
	s.jsonResponse(w, http.StatusOK, model)
}
