package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const sectionColumns = `id, company_id, type, title, content, layout,
	sort_order, column_group, column_index, is_visible, created_at, updated_at`

// ListSections retrieves a company's sections ordered by sort_order.
// When visibleOnly is set, hidden sections are excluded.
func (db *DB) ListSections(ctx context.Context, companyID uuid.UUID, visibleOnly bool) ([]Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM page_sections WHERE company_id = $1`
	if visibleOnly {
		query += ` AND is_visible`
	}
	query += ` ORDER BY sort_order ASC`

	rows, err := db.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	var sections []Section
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Type, &s.Title, &s.Content, &s.Layout,
			&s.SortOrder, &s.ColumnGroup, &s.ColumnIndex, &s.IsVisible, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// ListSectionIDs retrieves the persisted section IDs for a company
func (db *DB) ListSectionIDs(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id FROM page_sections WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list section ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan section id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetSection retrieves a single section by ID
func (db *DB) GetSection(ctx context.Context, id uuid.UUID) (*Section, error) {
	var s Section
	err := db.pool.QueryRow(ctx,
		`SELECT `+sectionColumns+` FROM page_sections WHERE id = $1`, id,
	).Scan(&s.ID, &s.CompanyID, &s.Type, &s.Title, &s.Content, &s.Layout,
		&s.SortOrder, &s.ColumnGroup, &s.ColumnIndex, &s.IsVisible, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return &s, nil
}

// ApplySectionChanges executes a reconciliation plan against a company's
// sections: deletes by id, inserts new rows, updates existing rows in place.
// Writes are sequential, matching the save operation's best-effort contract.
func (db *DB) ApplySectionChanges(ctx context.Context, companyID uuid.UUID, creates, updates []Section, deleteIDs []uuid.UUID) error {
	if len(deleteIDs) > 0 {
		_, err := db.pool.Exec(ctx,
			`DELETE FROM page_sections WHERE company_id = $1 AND id = ANY($2)`,
			companyID, deleteIDs)
		if err != nil {
			return fmt.Errorf("failed to delete sections: %w", err)
		}
	}

	for i := range creates {
		s := &creates[i]
		err := db.pool.QueryRow(ctx,
			`INSERT INTO page_sections (company_id, type, title, content, layout,
			     sort_order, column_group, column_index, is_visible)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`,
			companyID, s.Type, s.Title, s.Content, s.Layout,
			s.SortOrder, s.ColumnGroup, s.ColumnIndex, s.IsVisible,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("failed to create section: %w", err)
		}
	}

	for i := range updates {
		s := &updates[i]
		_, err := db.pool.Exec(ctx,
			`UPDATE page_sections
			 SET type = $1, title = $2, content = $3, layout = $4, sort_order = $5,
			     column_group = $6, column_index = $7, is_visible = $8, updated_at = NOW()
			 WHERE id = $9 AND company_id = $10`,
			s.Type, s.Title, s.Content, s.Layout, s.SortOrder,
			s.ColumnGroup, s.ColumnIndex, s.IsVisible, s.ID, companyID,
		)
		if err != nil {
			return fmt.Errorf("failed to update section: %w", err)
		}
	}

	return nil
}
