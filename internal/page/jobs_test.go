package page

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/careers-builder/internal/db"
)

var testJobs = []db.Job{
	{Title: "Backend Engineer", LocationType: db.LocationRemote, JobType: db.JobFullTime},
	{Title: "Frontend Engineer", LocationType: db.LocationHybrid, JobType: db.JobFullTime},
	{Title: "Design Intern", LocationType: db.LocationOnsite, JobType: db.JobInternship},
}

func TestFilterJobs_QueryIsCaseInsensitiveSubstring(t *testing.T) {
	got := FilterJobs(testJobs, JobFilter{Query: "engineer"})
	assert.Len(t, got, 2)

	got = FilterJobs(testJobs, JobFilter{Query: "BACKEND"})
	assert.Len(t, got, 1)
	assert.Equal(t, "Backend Engineer", got[0].Title)
}

func TestFilterJobs_PredicatesConjoin(t *testing.T) {
	got := FilterJobs(testJobs, JobFilter{Query: "engineer", LocationType: db.LocationRemote})
	assert.Len(t, got, 1)
	assert.Equal(t, "Backend Engineer", got[0].Title)
}

func TestFilterJobs_AllMatchesEverything(t *testing.T) {
	got := FilterJobs(testJobs, JobFilter{LocationType: "all", JobType: "ALL"})
	assert.Len(t, got, 3)
}

func TestFilterJobs_NoMatchReturnsEmptyNotNil(t *testing.T) {
	got := FilterJobs(testJobs, JobFilter{Query: "astronaut"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOptions_DistinctValuesInFirstAppearanceOrder(t *testing.T) {
	opts := Options(testJobs)
	assert.Equal(t, []string{db.LocationRemote, db.LocationHybrid, db.LocationOnsite}, opts.LocationTypes)
	assert.Equal(t, []string{db.JobFullTime, db.JobInternship}, opts.JobTypes)
}

func TestOptions_EmptyJobList(t *testing.T) {
	opts := Options(nil)
	assert.Empty(t, opts.LocationTypes)
	assert.Empty(t, opts.JobTypes)
}

func TestBuild_MetaDescriptionFallsBackToFirstSection(t *testing.T) {
	company := &db.Company{Slug: "acme", Name: "Acme", Description: ""}
	sections := []db.Section{
		{Content: "<p>We build rockets.</p>", Layout: db.LayoutFullWidth, ColumnGroup: 1},
	}

	model := Build(company, nil, sections, testJobs, JobFilter{})
	assert.Equal(t, "We build rockets.", model.Company.MetaDescription)

	company.Description = "A rocket company"
	model = Build(company, nil, sections, testJobs, JobFilter{})
	assert.Equal(t, "A rocket company", model.Company.MetaDescription)
}
