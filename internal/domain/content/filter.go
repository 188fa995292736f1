package content

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// MatchesSearch reports whether term is a case-insensitive substring of any
// of the record's searchable fields. An empty term matches everything.
func MatchesSearch(r Record, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	needle := folder.String(term)
	for _, field := range r.SearchText() {
		if strings.Contains(folder.String(field), needle) {
			return true
		}
	}
	return false
}

// MatchesCategory is an exact category match; CategoryAll and "" match everything
func MatchesCategory(r Record, category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return r.RecordCategory() == category
}

// Filter projects records by search term and category, preserving order
func Filter[T Record](records []T, term, category string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if MatchesCategory(r, category) && MatchesSearch(r, term) {
			out = append(out, r)
		}
	}
	return out
}

// Categories returns the distinct non-empty categories, sorted
func Categories[T Record](records []T) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		if c := strings.TrimSpace(r.RecordCategory()); c != "" {
			seen[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// FilterOptions returns the filter chips for a list: CategoryAll first,
// then the distinct categories
func FilterOptions[T Record](records []T) []string {
	return append([]string{CategoryAll}, Categories(records)...)
}
