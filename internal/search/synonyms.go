package search

import (
	"sort"
	"strings"
)

// synonyms maps query keywords to related terms. Expansion is additive: the
// original query is never reduced, synonyms are appended when the keyword
// appears anywhere in the query (case-insensitive substring).
var synonyms = map[string][]string{
	"kids":        {"youth", "children", "students", "tutoring", "mentoring", "school"},
	"children":    {"youth", "kids", "students", "school"},
	"animals":     {"dogs", "cats", "wildlife", "pets", "shelter"},
	"dogs":        {"animals", "pets", "shelter", "walking"},
	"environment": {"garden", "park", "cleanup", "trees", "recycling", "compost"},
	"garden":      {"gardening", "planting", "compost", "environment"},
	"seniors":     {"elderly", "aging", "older", "adults"},
	"food":        {"hunger", "meals", "pantry", "food bank", "soup kitchen"},
	"hunger":      {"food", "meals", "pantry"},
	"homeless":    {"housing", "shelter", "outreach"},
	"health":      {"hospital", "wellness", "blood", "care"},
	"arts":        {"music", "theater", "museum", "creative"},
	"teaching":    {"tutoring", "mentoring", "education", "students"},
}

// ExpandQuery returns the lower-cased query with every matching keyword's
// synonyms appended. Keywords are matched against the original query only,
// in sorted order, so expansion never cascades and the result is stable.
func ExpandQuery(query string) string {
	original := strings.ToLower(query)

	keywords := make([]string, 0, len(synonyms))
	for keyword := range synonyms {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)

	expanded := original
	for _, keyword := range keywords {
		if strings.Contains(original, keyword) {
			expanded += " " + strings.Join(synonyms[keyword], " ")
		}
	}
	return expanded
}
