package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const companyColumns = `id, slug, name, description, is_published,
	last_saved_at, last_published_at, published_snapshot, created_at, updated_at`

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.IsPublished,
		&c.LastSavedAt, &c.LastPublishedAt, &c.PublishedSnapshot, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &c, nil
}

// GetCompanyBySlug retrieves a company by its URL slug
func (db *DB) GetCompanyBySlug(ctx context.Context, slug string) (*Company, error) {
	return scanCompany(db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE slug = $1`, slug))
}

// GetCompanyByID retrieves a company by its UUID
func (db *DB) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	return scanCompany(db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

// CheckSlugExists reports whether a company slug is already taken
func (db *DB) CheckSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM companies WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return exists, nil
}

// UpdateCompanyProfile updates the draft-level company fields and stamps
// last_saved_at. Publish state and snapshot are never touched here.
func (db *DB) UpdateCompanyProfile(ctx context.Context, companyID uuid.UUID, name, description string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE companies
		 SET name = $1, description = $2, last_saved_at = NOW(), updated_at = NOW()
		 WHERE id = $3`,
		name, description, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update company profile: %w", err)
	}
	return nil
}

// MarkSaved stamps last_saved_at without touching other fields
func (db *DB) MarkSaved(ctx context.Context, companyID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE companies SET last_saved_at = NOW(), updated_at = NOW() WHERE id = $1`,
		companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark company saved: %w", err)
	}
	return nil
}

// SetPublished marks the company published, stamps last_published_at and
// overwrites the single retained snapshot generation.
func (db *DB) SetPublished(ctx context.Context, companyID uuid.UUID, snapshot json.RawMessage) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE companies
		 SET is_published = TRUE, last_published_at = NOW(),
		     published_snapshot = $1, updated_at = NOW()
		 WHERE id = $2`,
		snapshot, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to publish company: %w", err)
	}
	return nil
}

// SetUnpublished clears the published flag. The publish timestamp and
// snapshot are retained so a re-publish without edits is possible.
func (db *DB) SetUnpublished(ctx context.Context, companyID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE companies SET is_published = FALSE, updated_at = NOW() WHERE id = $1`,
		companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to unpublish company: %w", err)
	}
	return nil
}
