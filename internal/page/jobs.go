package page

import (
	"strings"

	"github.com/jonathan/careers-builder/internal/db"
)

// JobFilter is the public page's filter state. Empty or "all" values match
// everything; the three predicates are independent and conjoined.
type JobFilter struct {
	Query        string
	LocationType string
	JobType      string
}

func matchesAll(filter string) bool {
	return filter == "" || strings.EqualFold(filter, "all")
}

// Matches reports whether a job passes every predicate of the filter.
func (f JobFilter) Matches(j db.Job) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Query)) {
		return false
	}
	if !matchesAll(f.LocationType) && j.LocationType != f.LocationType {
		return false
	}
	if !matchesAll(f.JobType) && j.JobType != f.JobType {
		return false
	}
	return true
}

// FilterJobs returns the jobs passing the filter. An empty result is a valid
// page state ("no results"), never an error.
func FilterJobs(jobs []db.Job, f JobFilter) []db.Job {
	filtered := make([]db.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Matches(j) {
			filtered = append(filtered, j)
		}
	}
	return filtered
}

// FilterOptions are the selectable filter values, derived from the values
// actually present in the job list: categories with zero postings are omitted.
type FilterOptions struct {
	LocationTypes []string `json:"location_types"`
	JobTypes      []string `json:"job_types"`
}

// Options derives the distinct locationType and jobType values from the
// unfiltered job list, in order of first appearance.
func Options(jobs []db.Job) FilterOptions {
	opts := FilterOptions{
		LocationTypes: []string{},
		JobTypes:      []string{},
	}
	seenLoc := make(map[string]bool)
	seenType := make(map[string]bool)
	for _, j := range jobs {
		if !seenLoc[j.LocationType] {
			seenLoc[j.LocationType] = true
			opts.LocationTypes = append(opts.LocationTypes, j.LocationType)
		}
		if !seenType[j.JobType] {
			seenType[j.JobType] = true
			opts.JobTypes = append(opts.JobTypes, j.JobType)
		}
	}
	return opts
}
