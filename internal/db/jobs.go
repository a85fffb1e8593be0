package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const jobColumns = `id, company_id, title, department, location, location_type,
	job_type, description, requirements, salary, is_active, posted_at`

// ListJobs retrieves a company's jobs, newest first. When activeOnly is set,
// inactive postings are excluded.
func (db *DB) ListJobs(ctx context.Context, companyID uuid.UUID, activeOnly bool) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE company_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY posted_at DESC`

	rows, err := db.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Department, &j.Location,
			&j.LocationType, &j.JobType, &j.Description, &j.Requirements, &j.Salary,
			&j.IsActive, &j.PostedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// ListJobIDs retrieves the persisted job IDs for a company
func (db *DB) ListJobIDs(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id FROM jobs WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan job id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ApplyJobChanges executes a reconciliation plan against a company's jobs,
// following the same delete/insert/update contract as sections.
func (db *DB) ApplyJobChanges(ctx context.Context, companyID uuid.UUID, creates, updates []Job, deleteIDs []uuid.UUID) error {
	if len(deleteIDs) > 0 {
		_, err := db.pool.Exec(ctx,
			`DELETE FROM jobs WHERE company_id = $1 AND id = ANY($2)`,
			companyID, deleteIDs)
		if err != nil {
			return fmt.Errorf("failed to delete jobs: %w", err)
		}
	}

	for i := range creates {
		j := &creates[i]
		err := db.pool.QueryRow(ctx,
			`INSERT INTO jobs (company_id, title, department, location, location_type,
			     job_type, description, requirements, salary, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 RETURNING id, posted_at`,
			companyID, j.Title, j.Department, j.Location, j.LocationType,
			j.JobType, j.Description, j.Requirements, j.Salary, j.IsActive,
		).Scan(&j.ID, &j.PostedAt)
		if err != nil {
			return fmt.Errorf("failed to create job: %w", err)
		}
	}

	for i := range updates {
		j := &updates[i]
		_, err := db.pool.Exec(ctx,
			`UPDATE jobs
			 SET title = $1, department = $2, location = $3, location_type = $4,
			     job_type = $5, description = $6, requirements = $7, salary = $8,
			     is_active = $9
			 WHERE id = $10 AND company_id = $11`,
			j.Title, j.Department, j.Location, j.LocationType, j.JobType,
			j.Description, j.Requirements, j.Salary, j.IsActive, j.ID, companyID,
		)
		if err != nil {
			return fmt.Errorf("failed to update job: %w", err)
		}
	}

	return nil
}

// JobKey identifies a posting for bulk-import duplicate detection.
type JobKey struct {
	Title      string
	Department string
	Location   string
}

// ListJobKeys retrieves the (title, department, location) triples already
// present for a company, used to skip duplicates during bulk import.
func (db *DB) ListJobKeys(ctx context.Context, companyID uuid.UUID) (map[JobKey]bool, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT title, department, location FROM jobs WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[JobKey]bool)
	for rows.Next() {
		var k JobKey
		if err := rows.Scan(&k.Title, &k.Department, &k.Location); err != nil {
			return nil, fmt.Errorf("failed to scan job key: %w", err)
		}
		keys[k] = true
	}
	return keys, nil
}

// InsertJobs bulk-inserts postings, returning the number created
func (db *DB) InsertJobs(ctx context.Context, jobs []Job) (int, error) {
	created := 0
	for i := range jobs {
		j := &jobs[i]
		_, err := db.pool.Exec(ctx,
			`INSERT INTO jobs (company_id, title, department, location, location_type,
			     job_type, description, requirements, salary, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			j.CompanyID, j.Title, j.Department, j.Location, j.LocationType,
			j.JobType, j.Description, j.Requirements, j.Salary, j.IsActive,
		)
		if err != nil {
			return created, fmt.Errorf("failed to insert job %q: %w", j.Title, err)
		}
		created++
	}
	return created, nil
}
