package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Company is the tenant root. One careers page per company.
type Company struct {
	ID                 uuid.UUID       `json:"id"`
	Slug               string          `json:"slug"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	IsPublished        bool            `json:"is_published"`
	LastSavedAt        *time.Time      `json:"last_saved_at,omitempty"`
	LastPublishedAt    *time.Time      `json:"last_published_at,omitempty"`
	PublishedSnapshot  json.RawMessage `json:"-"` // opaque; exposed only through the publish engine
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Link is a label+url pair used for header and footer navigation.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Theme holds per-company visual configuration, 1:1 with Company.
type Theme struct {
	ID               uuid.UUID   `json:"id"`
	CompanyID        uuid.UUID   `json:"company_id"`
	PrimaryColor     string      `json:"primary_color"`
	SecondaryColor   string      `json:"secondary_color"`
	BackgroundColor  string      `json:"background_color"`
	LogoURL          string      `json:"logo_url,omitempty"`
	BannerURL        string      `json:"banner_url,omitempty"`
	BannerURLs       StringArray `json:"banner_urls"`
	AutoRotate       bool        `json:"auto_rotate"`
	RotationInterval int         `json:"rotation_interval"`
	VideoURL         string      `json:"video_url,omitempty"`
	HeaderLinks      LinkArray   `json:"header_links"`
	FooterText       string      `json:"footer_text,omitempty"`
	FooterLinks      LinkArray   `json:"footer_links"`
	FontFamily       string      `json:"font_family"`
	FontSize         string      `json:"font_size"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Section layout variants.
const (
	LayoutFullWidth   = "FULL_WIDTH"
	LayoutTwoColumn   = "TWO_COLUMN"
	LayoutThreeColumn = "THREE_COLUMN"
)

// Section is an ordered, groupable content block on the careers page.
// Sections sharing a ColumnGroup render side by side in ColumnIndex order.
type Section struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Layout      string    `json:"layout"`
	SortOrder   int       `json:"sort_order"`
	ColumnGroup int       `json:"column_group"`
	ColumnIndex int       `json:"column_index"`
	IsVisible   bool      `json:"is_visible"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Location type values for jobs.
const (
	LocationRemote = "REMOTE"
	LocationHybrid = "HYBRID"
	LocationOnsite = "ONSITE"
)

// Job type values.
const (
	JobFullTime   = "FULL_TIME"
	JobPartTime   = "PART_TIME"
	JobContract   = "CONTRACT"
	JobInternship = "INTERNSHIP"
)

// Job is a per-company posting with structured filter fields.
type Job struct {
	ID           uuid.UUID `json:"id"`
	CompanyID    uuid.UUID `json:"company_id"`
	Title        string    `json:"title"`
	Department   string    `json:"department"`
	Location     string    `json:"location"`
	LocationType string    `json:"location_type"`
	JobType      string    `json:"job_type"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Salary       string    `json:"salary"`
	IsActive     bool      `json:"is_active"`
	PostedAt     time.Time `json:"posted_at"`
}

// Membership roles.
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
)

// User is a company membership. Email is globally unique: one company per account.
type User struct {
	ID           uuid.UUID `json:"id"`
	CompanyID    uuid.UUID `json:"company_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Comment is an append-only discussion entry attached to a named page anchor.
// SectionAnchor is either a persisted section UUID or a virtual region name
// ("header", "jobs-list", ...); either way the comment is scoped to its company.
type Comment struct {
	ID            uuid.UUID   `json:"id"`
	CompanyID     uuid.UUID   `json:"company_id"`
	SectionAnchor string      `json:"section_anchor"`
	UserEmail     string      `json:"user_email"`
	UserName      string      `json:"user_name,omitempty"`
	Content       string      `json:"content"`
	Mentions      StringArray `json:"mentions"`
	CreatedAt     time.Time   `json:"created_at"`
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	switch source := src.(type) {
	case []byte:
		return json.Unmarshal(source, a)
	case string:
		return json.Unmarshal([]byte(source), a)
	default:
		return errors.New("unsupported source type for StringArray")
	}
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// LinkArray handles JSONB arrays of Link objects
type LinkArray []Link

// Scan implements the Scanner interface for LinkArray
func (a *LinkArray) Scan(src interface{}) error {
	if src == nil {
		*a = []Link{}
		return nil
	}
	switch source := src.(type) {
	case []byte:
		return json.Unmarshal(source, a)
	case string:
		return json.Unmarshal([]byte(source), a)
	default:
		return errors.New("unsupported source type for LinkArray")
	}
}

// Value implements the Valuer interface for LinkArray
func (a LinkArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
