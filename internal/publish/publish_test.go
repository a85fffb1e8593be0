package publish

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careers-builder/internal/db"
)

func testTheme() *db.Theme {
	return &db.Theme{
		ID:              uuid.New(),
		CompanyID:       uuid.New(),
		PrimaryColor:    "#3B82F6",
		SecondaryColor:  "#1E40AF",
		BackgroundColor: "#FFFFFF",
		FontFamily:      "Inter",
		FontSize:        "16px",
	}
}

func TestCaptureAndDecode(t *testing.T) {
	theme := testTheme()
	sections := []db.Section{{
		ID: uuid.New(), Type: "ABOUT", Title: "About Us", Content: "<p>hi</p>",
		Layout: db.LayoutFullWidth, SortOrder: 1, ColumnGroup: 1, IsVisible: true,
	}}
	jobs := []db.Job{{
		ID: uuid.New(), Title: "Engineer", Department: "Eng", Location: "NYC",
		LocationType: db.LocationRemote, JobType: db.JobFullTime, IsActive: true,
	}}

	raw, err := Capture(theme, sections, jobs)
	require.NoError(t, err)

	snap, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, theme.PrimaryColor, snap.Theme.PrimaryColor)
	require.Len(t, snap.Sections, 1)
	assert.Equal(t, "About Us", snap.Sections[0].Title)
	require.Len(t, snap.Jobs, 1)
	assert.Equal(t, "Engineer", snap.Jobs[0].Title)
	assert.WithinDuration(t, time.Now().UTC(), snap.CapturedAt, time.Minute)
}

func TestCapture_EmptyContentIsValid(t *testing.T) {
	raw, err := Capture(testTheme(), nil, nil)
	require.NoError(t, err)

	snap, err := Decode(raw)
	require.NoError(t, err)
	assert.NotNil(t, snap.Sections)
	assert.Empty(t, snap.Sections)
	assert.NotNil(t, snap.Jobs)
	assert.Empty(t, snap.Jobs)
}

func TestCapture_RejectsInvalidEnum(t *testing.T) {
	jobs := []db.Job{{
		ID: uuid.New(), Title: "Engineer", Department: "Eng", Location: "NYC",
		LocationType: "ANYWHERE", JobType: db.JobFullTime,
	}}

	_, err := Capture(testTheme(), nil, jobs)
	assert.Error(t, err)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestVisible(t *testing.T) {
	now := time.Now()
	snapshot := []byte(`{"theme":null,"sections":[],"jobs":[],"captured_at":"x"}`)

	tests := []struct {
		name    string
		company *db.Company
		want    bool
	}{
		{"nil company", nil, false},
		{"never published", &db.Company{}, false},
		{
			"published with snapshot",
			&db.Company{IsPublished: true, LastPublishedAt: &now, PublishedSnapshot: snapshot},
			true,
		},
		{
			"unpublished retains snapshot but hides page",
			&db.Company{IsPublished: false, LastPublishedAt: &now, PublishedSnapshot: snapshot},
			false,
		},
		{
			"published flag without snapshot fails closed",
			&db.Company{IsPublished: true, LastPublishedAt: &now},
			false,
		},
		{
			"published flag without timestamp fails closed",
			&db.Company{IsPublished: true, PublishedSnapshot: snapshot},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visible(tt.company))
		})
	}
}
