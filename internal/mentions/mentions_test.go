package mentions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var roster = []Member{
	{Email: "jane@acme.test", Name: "Jane Doe"},
	{Email: "jan@acme.test", Name: "Jan"},
	{Email: "bob@acme.test", Name: "Bob"},
}

func TestExtract_MultiWordName(t *testing.T) {
	got := Extract("ping @Jane Doe and @ghost123 about the hero copy", roster)
	assert.Equal(t, []string{"jane@acme.test"}, got)
}

func TestExtract_LongestCandidateWins(t *testing.T) {
	// "Jane Doe" must beat the shorter "Jan" at the same @.
	got := Extract("@Jane Doe", roster)
	assert.Equal(t, []string{"jane@acme.test"}, got)
}

func TestExtract_BoundaryPreventsPrefixMatch(t *testing.T) {
	// "Jan" must not match inside "@Janet".
	got := Extract("hey @Janet", roster)
	assert.Empty(t, got)
}

func TestExtract_ByEmail(t *testing.T) {
	got := Extract("cc @bob@acme.test please", roster)
	assert.Equal(t, []string{"bob@acme.test"}, got)
}

func TestExtract_DeduplicatesPreservingOrder(t *testing.T) {
	got := Extract("@Bob then @Jan then @Bob again", roster)
	assert.Equal(t, []string{"bob@acme.test", "jan@acme.test"}, got)
}

func TestExtract_NoRosterNoContent(t *testing.T) {
	assert.Nil(t, Extract("", roster))
	assert.Nil(t, Extract("@Jane Doe", nil))
}

func TestExtract_UnmatchedTokenIsLiteralText(t *testing.T) {
	got := Extract("email me @ the usual address", roster)
	assert.Empty(t, got)
}
