package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ListComments retrieves a thread for one anchor within a company, oldest first
func (db *DB) ListComments(ctx context.Context, companyID uuid.UUID, anchor string) ([]Comment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, company_id, section_anchor, user_email, COALESCE(user_name, ''),
		        content, mentions, created_at
		 FROM section_comments
		 WHERE company_id = $1 AND section_anchor = $2
		 ORDER BY created_at ASC`,
		companyID, anchor)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.SectionAnchor, &c.UserEmail, &c.UserName,
			&c.Content, &c.Mentions, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, nil
}

// CreateComment appends to a thread. Comments are immutable once created:
// no update or delete operation exists.
func (db *DB) CreateComment(ctx context.Context, c *Comment) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO section_comments (company_id, section_anchor, user_email, user_name, content, mentions)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		c.CompanyID, c.SectionAnchor, c.UserEmail, nullIfEmpty(c.UserName), c.Content, c.Mentions,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}
