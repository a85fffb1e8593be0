package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const themeColumns = `id, company_id, primary_color, secondary_color, background_color,
	logo_url, banner_url, banner_urls, auto_rotate, rotation_interval, video_url,
	header_links, footer_text, footer_links, font_family, font_size, updated_at`

func scanTheme(row pgx.Row) (*Theme, error) {
	var t Theme
	var logoURL, bannerURL, videoURL, footerText *string
	err := row.Scan(&t.ID, &t.CompanyID, &t.PrimaryColor, &t.SecondaryColor, &t.BackgroundColor,
		&logoURL, &bannerURL, &t.BannerURLs, &t.AutoRotate, &t.RotationInterval, &videoURL,
		&t.HeaderLinks, &footerText, &t.FooterLinks, &t.FontFamily, &t.FontSize, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get theme: %w", err)
	}
	if logoURL != nil {
		t.LogoURL = *logoURL
	}
	if bannerURL != nil {
		t.BannerURL = *bannerURL
	}
	if videoURL != nil {
		t.VideoURL = *videoURL
	}
	if footerText != nil {
		t.FooterText = *footerText
	}
	return &t, nil
}

// GetTheme retrieves a company's theme
func (db *DB) GetTheme(ctx context.Context, companyID uuid.UUID) (*Theme, error) {
	return scanTheme(db.pool.QueryRow(ctx,
		`SELECT `+themeColumns+` FROM company_themes WHERE company_id = $1`, companyID))
}

// UpsertTheme replaces a company's theme wholesale, creating it when absent
func (db *DB) UpsertTheme(ctx context.Context, t *Theme) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO company_themes (company_id, primary_color, secondary_color, background_color,
		     logo_url, banner_url, banner_urls, auto_rotate, rotation_interval, video_url,
		     header_links, footer_text, footer_links, font_family, font_size)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 ON CONFLICT (company_id) DO UPDATE SET
		     primary_color = $2, secondary_color = $3, background_color = $4,
		     logo_url = $5, banner_url = $6, banner_urls = $7, auto_rotate = $8,
		     rotation_interval = $9, video_url = $10, header_links = $11,
		     footer_text = $12, footer_links = $13, font_family = $14,
		     font_size = $15, updated_at = NOW()`,
		t.CompanyID, t.PrimaryColor, t.SecondaryColor, t.BackgroundColor,
		nullIfEmpty(t.LogoURL), nullIfEmpty(t.BannerURL), t.BannerURLs, t.AutoRotate,
		t.RotationInterval, nullIfEmpty(t.VideoURL), t.HeaderLinks,
		nullIfEmpty(t.FooterText), t.FooterLinks, t.FontFamily, t.FontSize,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert theme: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
