package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SignupParams carries the bootstrap inputs for a new tenant.
type SignupParams struct {
	CompanyName  string
	CompanySlug  string
	Email        string
	PasswordHash string
}

// defaultSections are created for every new company. Orders start at 1 and
// each section is its own singleton column group.
func defaultSections(companyName string) []Section {
	return []Section{
		{
			Type:      "ABOUT",
			Title:     "About Us",
			Content:   fmt.Sprintf("<p>Welcome to %s! Add your company story here.</p>", companyName),
			Layout:    LayoutFullWidth,
			SortOrder: 1, ColumnGroup: 1, IsVisible: true,
		},
		{
			Type:      "CULTURE",
			Title:     "Our Culture",
			Content:   "<p>Describe your company culture and values here.</p>",
			Layout:    LayoutFullWidth,
			SortOrder: 2, ColumnGroup: 2, IsVisible: true,
		},
		{
			Type:      "BENEFITS",
			Title:     "Benefits & Perks",
			Content:   "<p>List your company benefits and perks here.</p>",
			Layout:    LayoutFullWidth,
			SortOrder: 3, ColumnGroup: 3, IsVisible: true,
		},
	}
}

// Signup bootstraps a tenant: company, admin user, default theme and default
// sections in one transaction. A failure at any step rolls back everything,
// so a partially created company is never observable.
func (db *DB) Signup(ctx context.Context, params SignupParams) (uuid.UUID, error) {
	tx, err := db.begin(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var companyID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO companies (slug, name, description)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		params.CompanySlug, params.CompanyName,
		fmt.Sprintf("Welcome to %s! We're excited to have you join our team.", params.CompanyName),
	).Scan(&companyID)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrDuplicateSlug
		}
		return uuid.Nil, fmt.Errorf("failed to create company: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO users (company_id, email, password_hash, name, role)
		 VALUES ($1, $2, $3, $4, $5)`,
		companyID, params.Email, params.PasswordHash, params.CompanyName, RoleAdmin,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrDuplicateEmail
		}
		return uuid.Nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO company_themes (company_id) VALUES ($1)`, companyID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create default theme: %w", err)
	}

	for _, s := range defaultSections(params.CompanyName) {
		_, err = tx.Exec(ctx,
			`INSERT INTO page_sections (company_id, type, title, content, layout,
			     sort_order, column_group, column_index, is_visible)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			companyID, s.Type, s.Title, s.Content, s.Layout,
			s.SortOrder, s.ColumnGroup, s.ColumnIndex, s.IsVisible,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to create default section %q: %w", s.Title, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit signup: %w", err)
	}
	return companyID, nil
}
