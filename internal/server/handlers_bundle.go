package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/careers-builder/internal/db"
	"github.com/jonathan/careers-builder/internal/policy"
	"github.com/jonathan/careers-builder/internal/reconcile"
	"github.com/jonathan/careers-builder/internal/types"
)

// draftStore is the slice of the database a full-state save touches.
type draftStore interface {
	ListSectionIDs(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error)
	ListJobIDs(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error)
	ApplySectionChanges(ctx context.Context, companyID uuid.UUID, creates, updates []db.Section, deleteIDs []uuid.UUID) error
	ApplyJobChanges(ctx context.Context, companyID uuid.UUID, creates, updates []db.Job, deleteIDs []uuid.UUID) error
	UpsertTheme(ctx context.Context, t *db.Theme) error
	UpdateCompanyProfile(ctx context.Context, companyID uuid.UUID, name, description string) error
	MarkSaved(ctx context.Context, companyID uuid.UUID) error
}

// handleGetBundle returns the full editor view of a company: profile, theme,
// every section and every job regardless of visibility.
func (s *Server) handleGetBundle(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	_, company, ok := s.authorizeCompany(w, r, slug, policy.ActionEditDraft)
	if !ok {
		return
	}

	var (
		theme    *db.Theme
		sections []db.Section
		jobs     []db.Job
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		theme, err = s.db.GetTheme(ctx, company.ID)
		return err
	})
	g.Go(func() error {
		var err error
		sections, err = s.db.ListSections(ctx, company.ID, false)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = s.db.ListJobs(ctx, company.ID, false)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load bundle", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to load company data")
		return
	}

	if sections == nil {
		sections = []db.Section{}
	}
	if jobs == nil {
		jobs = []db.Job{}
	}

	s.jsonResponse(w, http.StatusOK, types.BundleResponse{
		Company:  company,
		Theme:    theme,
		Sections: sections,
		Jobs:     jobs,
	})
}

// handleSaveBundle applies a full-state save of the draft. Sections and jobs
// are reconciled against the store: entries without an id are created,
// entries with an id are updated, persisted rows missing from the payload are
// deleted. Omitting the sections or jobs key entirely leaves those rows
// untouched. Concurrent saves are last-write-wins.
func (s *Server) handleSaveBundle(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	_, company, ok := s.authorizeCompany(w, r, slug, policy.ActionEditDraft)
	if !ok {
		return
	}

	var req types.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	resp, ok := s.applyBundle(w, r, slug, company, &req)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// applyBundle runs saveDraft against the live store, writing the error
// response on failure; callers only proceed when ok is true. Publish reuses
// this for its implicit save-before-snapshot.
func (s *Server) applyBundle(w http.ResponseWriter, r *http.Request, slug string, company *db.Company, req *types.SaveRequest) (types.SaveResponse, bool) {
	resp, err := saveDraft(r.Context(), s.db, company.ID, req)
	if err != nil {
		var unknown *reconcile.ErrUnknownID
		if errors.As(err, &unknown) {
			s.errorResponse(w, http.StatusBadRequest, unknown.Error())
		} else {
			s.logger.Error("failed to save draft", zap.String("slug", slug), zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "failed to save")
		}
		return resp, false
	}
	return resp, true
}

// saveDraft persists a validated draft bundle. A nil Sections or Jobs slice
// means the client omitted the collection, so the stored rows stay untouched;
// an empty non-nil slice is an explicit delete-all.
func saveDraft(ctx context.Context, store draftStore, companyID uuid.UUID, req *types.SaveRequest) (types.SaveResponse, error) {
	resp := types.SaveResponse{}

	if req.Sections != nil {
		plan, creates, updates, err := planSections(ctx, store, companyID, req.Sections)
		if err != nil {
			return resp, err
		}
		if err := store.ApplySectionChanges(ctx, companyID, creates, updates, plan.DeleteIDs); err != nil {
			return resp, fmt.Errorf("failed to save sections: %w", err)
		}
		resp.SectionsCreated = len(creates)
		resp.SectionsUpdated = len(updates)
		resp.SectionsDeleted = len(plan.DeleteIDs)
	}

	if req.Jobs != nil {
		plan, creates, updates, err := planJobs(ctx, store, companyID, req.Jobs)
		if err != nil {
			return resp, err
		}
		if err := store.ApplyJobChanges(ctx, companyID, creates, updates, plan.DeleteIDs); err != nil {
			return resp, fmt.Errorf("failed to save jobs: %w", err)
		}
		resp.JobsCreated = len(creates)
		resp.JobsUpdated = len(updates)
		resp.JobsDeleted = len(plan.DeleteIDs)
	}

	if req.Theme != nil {
		if err := store.UpsertTheme(ctx, themeFromInput(companyID, req.Theme)); err != nil {
			return resp, fmt.Errorf("failed to save theme: %w", err)
		}
	}

	var err error
	if req.Company != nil {
		err = store.UpdateCompanyProfile(ctx, companyID, req.Company.Name, req.Company.Description)
	} else {
		err = store.MarkSaved(ctx, companyID)
	}
	if err != nil {
		return resp, fmt.Errorf("failed to stamp save: %w", err)
	}

	resp.SavedAt = time.Now().UTC()
	return resp, nil
}

// planSections computes the section reconciliation plan and materializes the
// create and update row sets from the submitted entries.
func planSections(ctx context.Context, store draftStore, companyID uuid.UUID, entries []types.SectionEntry) (*reconcile.Plan, []db.Section, []db.Section, error) {
	currentIDs, err := store.ListSectionIDs(ctx, companyID)
	if err != nil {
		return nil, nil, nil, err
	}

	submittedIDs := make([]*uuid.UUID, len(entries))
	for i := range entries {
		submittedIDs[i] = entries[i].ID
	}
	plan, err := reconcile.Compute(currentIDs, submittedIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	creates := make([]db.Section, 0, len(plan.CreateIdx))
	for _, i := range plan.CreateIdx {
		creates = append(creates, sectionFromEntry(companyID, &entries[i]))
	}
	updates := make([]db.Section, 0, len(plan.UpdateIdx))
	for _, i := range plan.UpdateIdx {
		sec := sectionFromEntry(companyID, &entries[i])
		sec.ID = *entries[i].ID
		updates = append(updates, sec)
	}
	return plan, creates, updates, nil
}

// planJobs mirrors planSections for job postings.
func planJobs(ctx context.Context, store draftStore, companyID uuid.UUID, entries []types.JobEntry) (*reconcile.Plan, []db.Job, []db.Job, error) {
	currentIDs, err := store.ListJobIDs(ctx, companyID)
	if err != nil {
		return nil, nil, nil, err
	}

	submittedIDs := make([]*uuid.UUID, len(entries))
	for i := range entries {
		submittedIDs[i] = entries[i].ID
	}
	plan, err := reconcile.Compute(currentIDs, submittedIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	creates := make([]db.Job, 0, len(plan.CreateIdx))
	for _, i := range plan.CreateIdx {
		creates = append(creates, jobFromEntry(companyID, &entries[i]))
	}
	updates := make([]db.Job, 0, len(plan.UpdateIdx))
	for _, i := range plan.UpdateIdx {
		job := jobFromEntry(companyID, &entries[i])
		job.ID = *entries[i].ID
		updates = append(updates, job)
	}
	return plan, creates, updates, nil
}

func sectionFromEntry(companyID uuid.UUID, e *types.SectionEntry) db.Section {
	return db.Section{
		CompanyID:   companyID,
		Type:        e.Type,
		Title:       e.Title,
		Content:     e.Content,
		Layout:      e.Layout,
		SortOrder:   e.SortOrder,
		ColumnGroup: e.ColumnGroup,
		ColumnIndex: e.ColumnIndex,
		IsVisible:   e.IsVisible,
	}
}

func jobFromEntry(companyID uuid.UUID, e *types.JobEntry) db.Job {
	return db.Job{
		CompanyID:    companyID,
		Title:        e.Title,
		Department:   e.Department,
		Location:     e.Location,
		LocationType: e.LocationType,
		JobType:      e.JobType,
		Description:  e.Description,
		Requirements: e.Requirements,
		Salary:       e.Salary,
		IsActive:     e.IsActive,
	}
}

func themeFromInput(companyID uuid.UUID, in *types.ThemeInput) *db.Theme {
	return &db.Theme{
		CompanyID:        companyID,
		PrimaryColor:     in.PrimaryColor,
		SecondaryColor:   in.SecondaryColor,
		BackgroundColor:  in.BackgroundColor,
		LogoURL:          in.LogoURL,
		BannerURL:        in.BannerURL,
		BannerURLs:       db.StringArray(in.BannerURLs),
		AutoRotate:       in.AutoRotate,
		RotationInterval: in.RotationInterval,
		VideoURL:         in.VideoURL,
		HeaderLinks:      db.LinkArray(in.HeaderLinks),
		FooterText:       in.FooterText,
		FooterLinks:      db.LinkArray(in.FooterLinks),
		FontFamily:       in.FontFamily,
		FontSize:         in.FontSize,
	}
}
