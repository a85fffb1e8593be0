package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Excerpt extracts plain text from section markup for use as a page meta
// description, collapsing whitespace and truncating to maxLen runes.
func Excerpt(markup string, maxLen int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")
	runes := []rune(text)
	if maxLen > 0 && len(runes) > maxLen {
		return strings.TrimSpace(string(runes[:maxLen])) + "..."
	}
	return text
}
