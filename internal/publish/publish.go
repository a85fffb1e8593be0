// Package publish implements the draft/published state machine for a careers
// page. Publishing freezes a point-in-time snapshot of the page; the public
// renderer reads only that snapshot, never the live draft.
package publish

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/careers-builder/internal/db"
	"github.com/jonathan/careers-builder/internal/schemas"
)

// Snapshot is the frozen copy of a page captured at publish time: the theme,
// the visible sections and the active jobs. Exactly one generation is kept;
// each publish overwrites the previous snapshot.
type Snapshot struct {
	Theme      *db.Theme    `json:"theme"`
	Sections   []db.Section `json:"sections"`
	Jobs       []db.Job     `json:"jobs"`
	CapturedAt time.Time    `json:"captured_at"`
}

// Capture builds and encodes a snapshot from the current draft state. The
// caller passes sections already filtered to visible and jobs filtered to
// active. The encoded blob is schema-checked before it can reach the store.
func Capture(theme *db.Theme, visibleSections []db.Section, activeJobs []db.Job) (json.RawMessage, error) {
	snap := Snapshot{
		Theme:      theme,
		Sections:   visibleSections,
		Jobs:       activeJobs,
		CapturedAt: time.Now().UTC(),
	}
	if snap.Sections == nil {
		snap.Sections = []db.Section{}
	}
	if snap.Jobs == nil {
		snap.Jobs = []db.Job{}
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := schemas.ValidatePublishedSnapshot(raw); err != nil {
		return nil, fmt.Errorf("snapshot failed schema validation: %w", err)
	}
	return raw, nil
}

// Decode parses a stored snapshot blob.
func Decode(raw json.RawMessage) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Visible is the single public-visibility rule: a page renders publicly only
// when the company is published, has a publish timestamp and has a snapshot.
// A published company without a snapshot fails closed (treated as not found)
// rather than falling back to the live draft.
func Visible(c *db.Company) bool {
	if c == nil {
		return false
	}
	return c.IsPublished && c.LastPublishedAt != nil && len(c.PublishedSnapshot) > 0
}
