package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/careers-builder/internal/page"
	"github.com/jonathan/careers-builder/internal/publish"
)

// jobFilterFromQuery reads the public filter state from query parameters.
func jobFilterFromQuery(r *http.Request) page.JobFilter {
	q := r.URL.Query()
	return page.JobFilter{
		Query:        q.Get("q"),
		LocationType: q.Get("locationType"),
		JobType:      q.Get("jobType"),
	}
}

// handlePublicPage serves the anonymous careers page. Content comes from the
// published snapshot only: a company that is unpublished, never published, or
// missing its snapshot is indistinguishable from one that does not exist.
func (s *Server) handlePublicPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx := r.Context()
	filter := jobFilterFromQuery(r)
	unfiltered := filter == page.JobFilter{}

	// Only the unfiltered page is cached; filtered views are cheap to derive
	// but vary per visitor.
	if unfiltered {
		if payload, hit, err := s.pageCache.GetPage(ctx, slug); err == nil && hit {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(payload)
			return
		} else if err != nil {
			s.logger.Warn("page cache read failed", zap.String("slug", slug), zap.Error(err))
		}
	}

	company, err := s.db.GetCompanyBySlug(ctx, slug)
	if err != nil {
		s.logger.Error("failed to load company", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !publish.Visible(company) {
		s.errorResponse(w, http.StatusNotFound, "careers page not found")
		return
	}

	snap, err := publish.Decode(company.PublishedSnapshot)
	if err != nil {
		s.logger.Error("stored snapshot is unreadable", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusNotFound, "careers page not found")
		return
	}

	model := page.Build(company, snap.Theme, snap.Sections, snap.Jobs, filter)

	if unfiltered {
		if payload, err := json.Marshal(model); err == nil {
			if err := s.pageCache.SetPage(ctx, slug, payload); err != nil {
				s.logger.Warn("page cache write failed", zap.String("slug", slug), zap.Error(err))
			}
		}
	}

	s.jsonResponse(w, http.StatusOK, model)
}
