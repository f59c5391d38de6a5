package contact

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Filter returns the items for which any of fields(item) contains query as
// a case-insensitive substring, in their original order. A blank query
// returns items unchanged.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []T
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// NameField searches the name only (viewer).
func NameField(c Contact) []string {
	return []string{c.Name}
}

// EditorFields searches name, email and company (editor).
func EditorFields(c Contact) []string {
	return []string{c.Name, c.Email, c.Company}
}

// CardFields searches name and subtitle (profile).
func CardFields(c Card) []string {
	return []string{c.Name, c.Subtitle}
}

// maxSuggestDistance bounds how far a suggestion may be from the query.
const maxSuggestDistance = 3

// Suggest returns the candidate whose lower-cased form, or any of its
// space-separated words, is nearest to query by edit distance, if within
// maxSuggestDistance. It returns "" for a blank query or no close match.
func Suggest(query string, candidates []string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ""
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		lc := strings.ToLower(c)
		d := levenshtein.ComputeDistance(q, lc)
		for _, w := range strings.Fields(lc) {
			if wd := levenshtein.ComputeDistance(q, w); wd < d {
				d = wd
			}
		}
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
