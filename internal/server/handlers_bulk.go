package server

import (
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/careers-builder/internal/importer"
	"github.com/jonathan/careers-builder/internal/policy"
	"github.com/jonathan/careers-builder/internal/types"
)

// maxUploadBytes bounds bulk-import spreadsheets.
const maxUploadBytes = 10 << 20

// handleBulkUpload imports job postings from an uploaded CSV or XLSX file
// into the caller's draft. The batch is all-or-nothing on validation: any row
// missing a required field rejects the whole file with the offending row
// numbers. Duplicate rows are silently skipped, not errors.
func (s *Server) handleBulkUpload(w http.ResponseWriter, r *http.Request) {
	_, company, ok := s.callerCompany(w, r, policy.ActionEditDraft)
	if !ok {
		return
	}
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	// The form names a target company; it must be the caller's own.
	if slug := r.FormValue("companySlug"); slug != "" && slug != company.Slug {
		s.errorResponse(w, http.StatusNotFound, "company not found")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close() //nolint:errcheck // read-only handle

	var rows []importer.Row
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		rows, err = importer.ReadCSV(file)
	case ".xlsx":
		rows, err = importer.ReadXLSX(file)
	default:
		s.errorResponse(w, http.StatusBadRequest, "unsupported file type: expected .csv or .xlsx")
		return
	}
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to parse file: "+err.Error())
		return
	}
	if len(rows) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "file contains no data rows")
		return
	}

	if err := importer.Validate(rows); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := s.db.ListJobKeys(ctx, company.ID)
	if err != nil {
		s.logger.Error("failed to load job keys", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to import jobs")
		return
	}

	jobs := importer.BuildJobs(rows, company.ID, existing)
	created, err := s.db.InsertJobs(ctx, jobs)
	if err != nil {
		s.logger.Error("failed to insert jobs", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to import jobs")
		return
	}

	if created > 0 {
		if err := s.db.MarkSaved(ctx, company.ID); err != nil {
			s.logger.Warn("failed to stamp save after import", zap.Error(err))
		}
	}

	s.logger.Info("bulk import completed",
		zap.String("slug", company.Slug),
		zap.Int("rows", len(rows)),
		zap.Int("created", created))
	s.jsonResponse(w, http.StatusCreated, types.BulkUploadResponse{
		Created: created,
		Skipped: len(rows) - created,
	})
}
