package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSnapshot = `{
	"theme": {
		"primary_color": "#3B82F6",
		"secondary_color": "#1E40AF",
		"background_color": "#FFFFFF",
		"font_family": "Inter",
		"font_size": "16px"
	},
	"sections": [{
		"id": "4c7a2f4e-6a5f-4a71-9f5e-0a9adfd9a111",
		"type": "ABOUT",
		"title": "About Us",
		"content": "<p>hi</p>",
		"layout": "FULL_WIDTH",
		"sort_order": 1,
		"column_group": 1,
		"column_index": 0,
		"is_visible": true
	}],
	"jobs": [{
		"id": "4c7a2f4e-6a5f-4a71-9f5e-0a9adfd9a222",
		"title": "Engineer",
		"department": "Eng",
		"location": "NYC",
		"location_type": "REMOTE",
		"job_type": "FULL_TIME"
	}],
	"captured_at": "2026-08-29T10:00:00Z"
}`

func TestValidatePublishedSnapshot_Valid(t *testing.T) {
	assert.NoError(t, ValidatePublishedSnapshot([]byte(validSnapshot)))
}

func TestValidatePublishedSnapshot_NullTheme(t *testing.T) {
	doc := `{"theme": null, "sections": [], "jobs": [], "captured_at": "2026-08-29T10:00:00Z"}`
	assert.NoError(t, ValidatePublishedSnapshot([]byte(doc)))
}

func TestValidatePublishedSnapshot_MissingRequired(t *testing.T) {
	doc := `{"sections": [], "jobs": []}`
	err := ValidatePublishedSnapshot([]byte(doc))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidatePublishedSnapshot_BadEnum(t *testing.T) {
	doc := `{
		"theme": null,
		"sections": [{
			"id": "x", "type": "ABOUT", "title": "t", "content": "",
			"layout": "FOUR_COLUMN", "sort_order": 1, "column_group": 1, "column_index": 0
		}],
		"jobs": [],
		"captured_at": "2026-08-29T10:00:00Z"
	}`
	assert.Error(t, ValidatePublishedSnapshot([]byte(doc)))
}

func TestValidateBytes_BrokenDocument(t *testing.T) {
	err := ValidateBytes([]byte(`{"type":"object"}`), []byte(`{broken`))
	assert.Error(t, err)
}
