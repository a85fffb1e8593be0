package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/careers-builder/internal/db"
)

// CompanyProfile is the editable subset of the company record.
type CompanyProfile struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
}

// ThemeInput carries the full theme state on save. The theme is replaced
// wholesale, there is no per-field patch.
type ThemeInput struct {
	PrimaryColor     string    `json:"primary_color" validate:"required"`
	SecondaryColor   string    `json:"secondary_color" validate:"required"`
	BackgroundColor  string    `json:"background_color" validate:"required"`
	LogoURL          string    `json:"logo_url"`
	BannerURL        string    `json:"banner_url"`
	BannerURLs       []string  `json:"banner_urls"`
	AutoRotate       bool      `json:"auto_rotate"`
	RotationInterval int       `json:"rotation_interval" validate:"gte=0"`
	VideoURL         string    `json:"video_url"`
	HeaderLinks      []db.Link `json:"header_links"`
	FooterText       string    `json:"footer_text"`
	FooterLinks      []db.Link `json:"footer_links"`
	FontFamily       string    `json:"font_family" validate:"required"`
	FontSize         string    `json:"font_size" validate:"required"`
}

// SectionEntry is one section in a save payload. A nil ID means create; a
// non-nil ID must refer to an existing section of the same company. Sections
// present in the store but absent from the payload are deleted.
type SectionEntry struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Type        string     `json:"type" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Content     string     `json:"content"`
	Layout      string     `json:"layout" validate:"required,oneof=FULL_WIDTH TWO_COLUMN THREE_COLUMN"`
	SortOrder   int        `json:"sort_order" validate:"gte=0"`
	ColumnGroup int        `json:"column_group" validate:"gte=0"`
	ColumnIndex int        `json:"column_index" validate:"gte=0"`
	IsVisible   bool       `json:"is_visible"`
}

// JobEntry is one job posting in a save payload, with the same create/update/
// delete semantics as SectionEntry.
type JobEntry struct {
	ID           *uuid.UUID `json:"id,omitempty"`
	Title        string     `json:"title" validate:"required"`
	Department   string     `json:"department" validate:"required"`
	Location     string     `json:"location" validate:"required"`
	LocationType string     `json:"location_type" validate:"required,oneof=REMOTE HYBRID ONSITE"`
	JobType      string     `json:"job_type" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Salary       string     `json:"salary"`
	IsActive     bool       `json:"is_active"`
}

// SaveRequest is the atomic full-state save of a company's draft. Omitted
// top-level pieces (nil Company, nil Theme, nil Sections, nil Jobs) are left
// untouched. A present Sections or Jobs slice is reconciled wholesale, so an
// explicit empty slice deletes every stored row.
type SaveRequest struct {
	Company  *CompanyProfile `json:"company,omitempty"`
	Theme    *ThemeInput     `json:"theme,omitempty"`
	Sections []SectionEntry  `json:"sections" validate:"dive"`
	Jobs     []JobEntry      `json:"jobs" validate:"dive"`
}

// BundleResponse is the full editor view of a company: draft sections and
// jobs regardless of visibility, plus publish-state metadata.
type BundleResponse struct {
	Company  *db.Company  `json:"company"`
	Theme    *db.Theme    `json:"theme"`
	Sections []db.Section `json:"sections"`
	Jobs     []db.Job     `json:"jobs"`
}

// SaveResponse reports the outcome of a draft save.
type SaveResponse struct {
	SavedAt         time.Time `json:"saved_at"`
	SectionsCreated int       `json:"sections_created"`
	SectionsUpdated int       `json:"sections_updated"`
	SectionsDeleted int       `json:"sections_deleted"`
	JobsCreated     int       `json:"jobs_created"`
	JobsUpdated     int       `json:"jobs_updated"`
	JobsDeleted     int       `json:"jobs_deleted"`
}

// PublishResponse reports a publish or unpublish transition.
type PublishResponse struct {
	IsPublished     bool       `json:"is_published"`
	LastPublishedAt *time.Time `json:"last_published_at,omitempty"`
}

// CommentRequest posts a new comment to a section anchor.
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// BulkUploadResponse summarizes a bulk job import.
type BulkUploadResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// Validate validates the SaveRequest using the validator.
func (r *SaveRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Company != nil {
		if err := validate.Struct(r.Company); err != nil {
			return err
		}
	}
	if r.Theme != nil {
		if err := validate.Struct(r.Theme); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the CommentRequest using the validator.
func (r *CommentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
