package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careers-builder/internal/db"
)

func section(group, index, order int, layout, content string) db.Section {
	return db.Section{
		Type:        "CUSTOM",
		Title:       "t",
		Content:     content,
		Layout:      layout,
		SortOrder:   order,
		ColumnGroup: group,
		ColumnIndex: index,
		IsVisible:   true,
	}
}

func TestRenderSection_TwoColumnSplit(t *testing.T) {
	rendered := RenderSection(section(1, 0, 1, db.LayoutTwoColumn, "left ||| right"))
	assert.Equal(t, []string{"left", "right"}, rendered.Columns)
}

func TestRenderSection_ThreeColumnSplit(t *testing.T) {
	rendered := RenderSection(section(1, 0, 1, db.LayoutThreeColumn, "a|||b|||c"))
	assert.Equal(t, []string{"a", "b", "c"}, rendered.Columns)
}

func TestRenderSection_TooFewPartsFallsBackFullWidth(t *testing.T) {
	// THREE_COLUMN content with one delimiter renders as a single column.
	rendered := RenderSection(section(1, 0, 1, db.LayoutThreeColumn, "a ||| b"))
	assert.Equal(t, []string{"a ||| b"}, rendered.Columns)
}

func TestRenderSection_ExtraPartsAreDropped(t *testing.T) {
	rendered := RenderSection(section(1, 0, 1, db.LayoutTwoColumn, "a|||b|||c"))
	assert.Equal(t, []string{"a", "b"}, rendered.Columns)
}

func TestGroupSections_PairRendersSideBySide(t *testing.T) {
	groups := GroupSections([]db.Section{
		section(5, 1, 2, db.LayoutFullWidth, "second"),
		section(5, 0, 1, db.LayoutFullWidth, "first"),
	})
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Columns())
	// Members ordered by ColumnIndex, not input order.
	assert.Equal(t, []string{"first"}, groups[0].Sections[0].Columns)
	assert.Equal(t, []string{"second"}, groups[0].Sections[1].Columns)
}

func TestGroupSections_GroupsOrderedByMinSortOrder(t *testing.T) {
	groups := GroupSections([]db.Section{
		section(2, 0, 3, db.LayoutFullWidth, "late"),
		section(1, 0, 4, db.LayoutFullWidth, "pair-b"),
		section(1, 1, 1, db.LayoutFullWidth, "pair-a"),
	})
	require.Len(t, groups, 2)
	// Group 1 owns sort orders {4, 1}; its minimum (1) beats group 2's (3).
	assert.Equal(t, []string{"pair-b"}, groups[0].Sections[0].Columns)
	assert.Equal(t, []string{"late"}, groups[1].Sections[0].Columns)
}

func TestGroupSections_SingletonAndOversizeStack(t *testing.T) {
	groups := GroupSections([]db.Section{
		section(1, 0, 1, db.LayoutFullWidth, "solo"),
		section(2, 0, 2, db.LayoutFullWidth, "a"),
		section(2, 1, 3, db.LayoutFullWidth, "b"),
		section(2, 2, 4, db.LayoutFullWidth, "c"),
		section(2, 3, 5, db.LayoutFullWidth, "d"),
	})
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Columns())
	// Four members exceed the column layouts, so the group stacks.
	assert.Equal(t, 1, groups[1].Columns())
	assert.Len(t, groups[1].Sections, 4)
}

func TestGroupSections_Empty(t *testing.T) {
	assert.Empty(t, GroupSections(nil))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Hello world", Excerpt("<p>Hello   <b>world</b></p>", 100))

	long := Excerpt("<p>abcdefghij</p>", 5)
	assert.Equal(t, "abcde...", long)
}
