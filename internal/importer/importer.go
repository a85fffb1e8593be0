// Package importer parses tabular job data (CSV or XLSX) into job postings.
// Column headers are normalized, required fields are validated per row, and
// free-text policy/type columns are mapped onto the structured enumerations
// by substring heuristics.
package importer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/careers-builder/internal/db"
)

// Row is one parsed data row, keyed by normalized header.
type Row map[string]string

// requiredColumns must be non-empty on every row or the whole batch is rejected.
var requiredColumns = []string{"title", "work_policy", "location", "department"}

// ErrInvalidRows reports rows missing required fields. Row numbers are
// 1-indexed and account for the header row, matching what the uploader sees
// in a spreadsheet.
type ErrInvalidRows struct {
	Rows []int
}

func (e *ErrInvalidRows) Error() string {
	parts := make([]string, len(e.Rows))
	for i, n := range e.Rows {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("invalid data in rows: %s. Missing required fields", strings.Join(parts, ", "))
}

// NormalizeHeader canonicalizes a column header: trimmed, lowercased, runs of
// whitespace replaced with underscores ("Work Policy" -> "work_policy").
func NormalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(h))), "_")
}

// Validate checks every row for the required columns. Offending spreadsheet
// row numbers are collected so the uploader can fix them all in one pass.
func Validate(rows []Row) error {
	var invalid []int
	for i, row := range rows {
		for _, col := range requiredColumns {
			if strings.TrimSpace(row[col]) == "" {
				invalid = append(invalid, i+2) // +2 for header and 0-index
				break
			}
		}
	}
	if len(invalid) > 0 {
		sort.Ints(invalid)
		return &ErrInvalidRows{Rows: invalid}
	}
	return nil
}

// MapLocationType maps a free-text work policy onto the location enumeration.
// Onsite is the fallback, not an explicit keyword check.
func MapLocationType(workPolicy string) string {
	policy := strings.ToLower(workPolicy)
	switch {
	case strings.Contains(policy, "remote"):
		return db.LocationRemote
	case strings.Contains(policy, "hybrid"):
		return db.LocationHybrid
	default:
		return db.LocationOnsite
	}
}

// MapJobType maps free-text employment/job type columns onto the job type
// enumeration, preferring employment_type when both are present.
func MapJobType(employmentType, jobType string) string {
	t := strings.ToLower(employmentType)
	if t == "" {
		t = strings.ToLower(jobType)
	}
	switch {
	case strings.Contains(t, "part"):
		return db.JobPartTime
	case strings.Contains(t, "contract"):
		return db.JobContract
	case strings.Contains(t, "intern"):
		return db.JobInternship
	default:
		return db.JobFullTime
	}
}

// BuildJob turns a validated row into a posting. Description and requirements
// are synthesized from the structured columns rather than taken verbatim.
func BuildJob(row Row, companyID uuid.UUID) db.Job {
	department := row["department"]
	if department == "" {
		department = "General"
	}
	experience := row["experience_level"]
	if experience == "" {
		experience = "Not specified"
	}
	employment := row["employment_type"]
	if employment == "" {
		employment = "Full time"
	}

	return db.Job{
		CompanyID:    companyID,
		Title:        row["title"],
		Department:   department,
		Location:     row["location"],
		LocationType: MapLocationType(row["work_policy"]),
		JobType:      MapJobType(row["employment_type"], row["job_type"]),
		Description: fmt.Sprintf("We are hiring a %s to join our %s team in %s. This is a %s position.",
			row["title"], department, row["location"], row["work_policy"]),
		Requirements: fmt.Sprintf("Experience Level: %s. %s position.", experience, employment),
		Salary:       row["salary_range"],
		IsActive:     true,
	}
}

// BuildJobs converts all rows, silently skipping duplicates: rows matching a
// posting already stored for the company, or repeating an earlier row of the
// same batch.
func BuildJobs(rows []Row, companyID uuid.UUID, existing map[db.JobKey]bool) []db.Job {
	seen := make(map[db.JobKey]bool, len(existing))
	for k := range existing {
		seen[k] = true
	}

	var jobs []db.Job
	for _, row := range rows {
		job := BuildJob(row, companyID)
		key := db.JobKey{Title: job.Title, Department: job.Department, Location: job.Location}
		if seen[key] {
			continue
		}
		seen[key] = true
		jobs = append(jobs, job)
	}
	return jobs
}
