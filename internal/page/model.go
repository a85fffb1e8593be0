package page

import (
	"github.com/jonathan/careers-builder/internal/db"
)

// metaDescriptionLen bounds the derived meta description.
const metaDescriptionLen = 160

// CompanyMeta is the public-facing company header of the render model.
type CompanyMeta struct {
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	MetaDescription string `json:"meta_description"`
}

// Model is the full render model for one careers page.
type Model struct {
	Company CompanyMeta    `json:"company"`
	Theme   *db.Theme      `json:"theme,omitempty"`
	Groups  []SectionGroup `json:"section_groups"`
	Jobs    []db.Job       `json:"jobs"`
	Filters FilterOptions  `json:"filters"`
}

// Build assembles the render model from page content. The caller is
// responsible for passing the right content generation: snapshot contents for
// the public page, the visible/active slice of the live draft for preview.
// Filter options come from the unfiltered job list so they reflect every
// category with at least one posting.
func Build(company *db.Company, theme *db.Theme, sections []db.Section, jobs []db.Job, filter JobFilter) *Model {
	meta := CompanyMeta{
		Slug:        company.Slug,
		Name:        company.Name,
		Description: company.Description,
	}
	meta.MetaDescription = company.Description
	if meta.MetaDescription == "" && len(sections) > 0 {
		meta.MetaDescription = Excerpt(sections[0].Content, metaDescriptionLen)
	}

	return &Model{
		Company: meta,
		Theme:   theme,
		Groups:  GroupSections(sections),
		Jobs:    FilterJobs(jobs, filter),
		Filters: Options(jobs),
	}
}
