package server

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careers-builder/internal/db"
	"github.com/jonathan/careers-builder/internal/page"
	"github.com/jonathan/careers-builder/internal/reconcile"
	"github.com/jonathan/careers-builder/internal/types"
)

// fakeDraftStore is an in-memory draftStore recording what a save touched.
type fakeDraftStore struct {
	sectionIDs []uuid.UUID
	jobIDs     []uuid.UUID

	sectionsApplied bool
	sectionDeletes  []uuid.UUID
	jobsApplied     bool
	jobDeletes      []uuid.UUID
	themeSaved      *db.Theme
	profileUpdated  bool
	markedSaved     bool
}

func (f *fakeDraftStore) ListSectionIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return f.sectionIDs, nil
}

func (f *fakeDraftStore) ListJobIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return f.jobIDs, nil
}

func (f *fakeDraftStore) ApplySectionChanges(_ context.Context, _ uuid.UUID, creates, updates []db.Section, deleteIDs []uuid.UUID) error {
	f.sectionsApplied = true
	f.sectionDeletes = deleteIDs
	return nil
}

func (f *fakeDraftStore) ApplyJobChanges(_ context.Context, _ uuid.UUID, creates, updates []db.Job, deleteIDs []uuid.UUID) error {
	f.jobsApplied = true
	f.jobDeletes = deleteIDs
	return nil
}

func (f *fakeDraftStore) UpsertTheme(_ context.Context, theme *db.Theme) error {
	f.themeSaved = theme
	return nil
}

func (f *fakeDraftStore) UpdateCompanyProfile(_ context.Context, _ uuid.UUID, _, _ string) error {
	f.profileUpdated = true
	return nil
}

func (f *fakeDraftStore) MarkSaved(_ context.Context, _ uuid.UUID) error {
	f.markedSaved = true
	return nil
}

func TestSaveDraft_OmittedCollectionsLeaveRowsUntouched(t *testing.T) {
	store := &fakeDraftStore{
		sectionIDs: []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
		jobIDs:     []uuid.UUID{uuid.New()},
	}

	// A theme-only payload decodes with nil Sections and Jobs.
	var req types.SaveRequest
	require.NoError(t, json.Unmarshal([]byte(`{"theme":{
		"primary_color":"#111111","secondary_color":"#222222",
		"background_color":"#FFFFFF","font_family":"Inter","font_size":"16px"
	}}`), &req))
	require.NoError(t, req.Validate())
	require.Nil(t, req.Sections)
	require.Nil(t, req.Jobs)

	resp, err := saveDraft(context.Background(), store, uuid.New(), &req)
	require.NoError(t, err)

	assert.False(t, store.sectionsApplied, "theme-only save must not touch sections")
	assert.False(t, store.jobsApplied, "theme-only save must not touch jobs")
	assert.NotNil(t, store.themeSaved)
	assert.True(t, store.markedSaved)
	assert.Zero(t, resp.SectionsDeleted)
	assert.Zero(t, resp.JobsDeleted)
}

func TestSaveDraft_EmptyCollectionsDeleteAll(t *testing.T) {
	sectionIDs := []uuid.UUID{uuid.New(), uuid.New()}
	jobIDs := []uuid.UUID{uuid.New()}
	store := &fakeDraftStore{sectionIDs: sectionIDs, jobIDs: jobIDs}

	req := &types.SaveRequest{
		Sections: []types.SectionEntry{},
		Jobs:     []types.JobEntry{},
	}

	resp, err := saveDraft(context.Background(), store, uuid.New(), req)
	require.NoError(t, err)

	assert.True(t, store.sectionsApplied)
	assert.ElementsMatch(t, sectionIDs, store.sectionDeletes)
	assert.Equal(t, 2, resp.SectionsDeleted)
	assert.True(t, store.jobsApplied)
	assert.ElementsMatch(t, jobIDs, store.jobDeletes)
	assert.Equal(t, 1, resp.JobsDeleted)
}

func TestSaveDraft_UnknownSubmittedID(t *testing.T) {
	store := &fakeDraftStore{}
	ghost := uuid.New()
	req := &types.SaveRequest{
		Sections: []types.SectionEntry{{
			ID: &ghost, Type: "ABOUT", Title: "About", Layout: db.LayoutFullWidth,
		}},
	}

	_, err := saveDraft(context.Background(), store, uuid.New(), req)
	var unknown *reconcile.ErrUnknownID
	require.ErrorAs(t, err, &unknown)
	assert.False(t, store.sectionsApplied, "nothing may be written after a failed plan")
	assert.False(t, store.markedSaved)
}

func TestSectionFromEntry(t *testing.T) {
	companyID := uuid.New()
	entry := &types.SectionEntry{
		Type:        "CULTURE",
		Title:       "Our Culture",
		Content:     "a ||| b",
		Layout:      db.LayoutTwoColumn,
		SortOrder:   3,
		ColumnGroup: 2,
		ColumnIndex: 1,
		IsVisible:   true,
	}

	sec := sectionFromEntry(companyID, entry)
	assert.Equal(t, companyID, sec.CompanyID)
	assert.Equal(t, uuid.Nil, sec.ID)
	assert.Equal(t, "Our Culture", sec.Title)
	assert.Equal(t, db.LayoutTwoColumn, sec.Layout)
	assert.Equal(t, 2, sec.ColumnGroup)
	assert.True(t, sec.IsVisible)
}

func TestJobFromEntry(t *testing.T) {
	companyID := uuid.New()
	entry := &types.JobEntry{
		Title:        "Engineer",
		Department:   "Eng",
		Location:     "NYC",
		LocationType: db.LocationRemote,
		JobType:      db.JobFullTime,
		Salary:       "100k",
		IsActive:     true,
	}

	job := jobFromEntry(companyID, entry)
	assert.Equal(t, companyID, job.CompanyID)
	assert.Equal(t, uuid.Nil, job.ID)
	assert.Equal(t, db.LocationRemote, job.LocationType)
	assert.Equal(t, "100k", job.Salary)
}

func TestThemeFromInput(t *testing.T) {
	companyID := uuid.New()
	in := &types.ThemeInput{
		PrimaryColor:    "#111111",
		SecondaryColor:  "#222222",
		BackgroundColor: "#FFFFFF",
		BannerURLs:      []string{"https://cdn.test/a.png"},
		HeaderLinks:     []db.Link{{Label: "Blog", URL: "https://acme.test/blog"}},
		FontFamily:      "Inter",
		FontSize:        "16px",
	}

	theme := themeFromInput(companyID, in)
	assert.Equal(t, companyID, theme.CompanyID)
	assert.Equal(t, db.StringArray{"https://cdn.test/a.png"}, theme.BannerURLs)
	assert.Equal(t, "Blog", theme.HeaderLinks[0].Label)
}

func TestJobFilterFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/acme/careers?q=engineer&locationType=REMOTE&jobType=FULL_TIME", nil)
	filter := jobFilterFromQuery(r)
	assert.Equal(t, page.JobFilter{
		Query:        "engineer",
		LocationType: "REMOTE",
		JobType:      "FULL_TIME",
	}, filter)

	r = httptest.NewRequest("GET", "/acme/careers", nil)
	assert.Equal(t, page.JobFilter{}, jobFilterFromQuery(r))
}
