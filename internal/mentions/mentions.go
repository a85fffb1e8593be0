// Package mentions extracts @-mentions from comment text against a company's
// team roster. Matching happens server-side so stored mentions always point
// at real collaborators.
package mentions

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Member is one roster entry a mention can resolve to.
type Member struct {
	Email string
	Name  string
}

// Extract scans content for "@" followed by a roster member's display name or
// email and returns the matched members' emails, deduplicated, in order of
// first appearance. At each "@" the longest matching candidate wins, so
// multi-word names ("@Jane Doe") resolve as a unit. Unmatched @-tokens are
// left as literal text: they produce no mention and no error.
func Extract(content string, roster []Member) []string {
	if content == "" || len(roster) == 0 {
		return nil
	}

	// Longest candidates first so "@Jane Doe" beats a hypothetical "@Jane".
	type candidate struct {
		text  string
		email string
	}
	var candidates []candidate
	for _, m := range roster {
		if m.Name != "" {
			candidates = append(candidates, candidate{text: m.Name, email: m.Email})
		}
		if m.Email != "" {
			candidates = append(candidates, candidate{text: m.Email, email: m.Email})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].text) > len(candidates[j].text)
	})

	var matched []string
	seen := make(map[string]bool)
	for i := 0; i < len(content); i++ {
		if content[i] != '@' {
			continue
		}
		rest := content[i+1:]
		for _, c := range candidates {
			if !strings.HasPrefix(rest, c.text) {
				continue
			}
			if !boundaryAfter(rest, len(c.text)) {
				continue
			}
			if !seen[c.email] {
				seen[c.email] = true
				matched = append(matched, c.email)
			}
			i += len(c.text) // resume after the mention
			break
		}
	}
	return matched
}

// boundaryAfter reports whether position n in s ends a token: end of string
// or a non-word rune. Prevents "@Jan" from matching inside "@Janet".
func boundaryAfter(s string, n int) bool {
	if n >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[n:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}
