// Package page builds the render model for a careers page: grouped section
// columns, filtered job lists and derived filter options. The same model
// backs the public page (from a snapshot) and the editor preview (from the
// live draft).
package page

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/careers-builder/internal/db"
)

// columnDelimiter splits one section's content into side-by-side sub-columns
// for the TWO_COLUMN and THREE_COLUMN layouts.
const columnDelimiter = "|||"

// RenderedSection is one section prepared for display. Columns holds the
// content split per the layout; a single entry means full-width rendering.
type RenderedSection struct {
	ID      uuid.UUID `json:"id"`
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Layout  string    `json:"layout"`
	Columns []string  `json:"columns"`
}

// SectionGroup is a side-by-side cluster of sections. Groups of two or three
// render as columns; any other size renders stacked full width.
type SectionGroup struct {
	Sections []RenderedSection `json:"sections"`
}

// Columns reports how many side-by-side slots the group occupies: 2 or 3 for
// column clusters, 1 for everything else (stacked rendering).
func (g *SectionGroup) Columns() int {
	if n := len(g.Sections); n == 2 || n == 3 {
		return n
	}
	return 1
}

// RenderSection splits a section's content according to its layout. If the
// content holds fewer delimiter-separated parts than the layout demands, the
// section falls back to full-width single-column rendering.
func RenderSection(s db.Section) RenderedSection {
	rendered := RenderedSection{
		ID:     s.ID,
		Type:   s.Type,
		Title:  s.Title,
		Layout: s.Layout,
	}

	parts := strings.Split(s.Content, columnDelimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}

	switch {
	case s.Layout == db.LayoutTwoColumn && len(parts) >= 2:
		rendered.Columns = parts[:2]
	case s.Layout == db.LayoutThreeColumn && len(parts) >= 3:
		rendered.Columns = parts[:3]
	default:
		rendered.Columns = []string{strings.TrimSpace(s.Content)}
	}

	return rendered
}

// GroupSections arranges sections into their side-by-side clusters: group by
// ColumnGroup, order members by ColumnIndex ascending, then order the groups
// by the minimum SortOrder among their members. The result is a total,
// stable order: ties keep the input order, which the store already sorts.
func GroupSections(sections []db.Section) []SectionGroup {
	byGroup := make(map[int][]db.Section)
	var groupKeys []int
	for _, s := range sections {
		if _, seen := byGroup[s.ColumnGroup]; !seen {
			groupKeys = append(groupKeys, s.ColumnGroup)
		}
		byGroup[s.ColumnGroup] = append(byGroup[s.ColumnGroup], s)
	}

	minOrder := make(map[int]int, len(groupKeys))
	for key, members := range byGroup {
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].ColumnIndex < members[j].ColumnIndex
		})
		min := members[0].SortOrder
		for _, m := range members {
			if m.SortOrder < min {
				min = m.SortOrder
			}
		}
		minOrder[key] = min
	}

	sort.SliceStable(groupKeys, func(i, j int) bool {
		return minOrder[groupKeys[i]] < minOrder[groupKeys[j]]
	})

	groups := make([]SectionGroup, 0, len(groupKeys))
	for _, key := range groupKeys {
		group := SectionGroup{}
		for _, s := range byGroup[key] {
			group.Sections = append(group.Sections, RenderSection(s))
		}
		groups = append(groups, group)
	}
	return groups
}
