package model

import "time"

// Event is one row of the canonical event table. String fields are never
// absent: the empty string is the canonical "missing" value.
type Event struct {
	EventID         string     `json:"eventId"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	OrgTitle        string     `json:"orgTitle"`
	LocationDisplay string     `json:"locationDisplay"`
	Theme           string     `json:"theme,omitempty"`
	Mood            string     `json:"mood,omitempty"`
	CombinedText    string     `json:"-"`
	ShortSummary    string     `json:"shortSummary"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	IsUpcoming      bool       `json:"isUpcoming"`
	DaysUntil       int        `json:"daysUntil"`
	ExtraTags       []string   `json:"extraTags,omitempty"`
}

// Feedback is a community review for a single event. The store keeps at most
// one live record per event id (update-by-key, last write wins).
type Feedback struct {
	EventID   string    `json:"eventId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}

// RatingSummary aggregates the feedback rows present for one event.
type RatingSummary struct {
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Profile is a caller-owned set of declared preferences. It is passed
// explicitly into scoring and recommendation calls; the engine never holds
// one between requests.
type Profile struct {
	Themes    []string `json:"themes,omitempty"`
	Moods     []string `json:"moods,omitempty"`
	Locations []string `json:"locations,omitempty"`
}

// AddTheme records a preferred theme, skipping duplicates.
func (p *Profile) AddTheme(theme string) { p.Themes = appendUnique(p.Themes, theme) }

// AddMood records a preferred mood, skipping duplicates.
func (p *Profile) AddMood(mood string) { p.Moods = appendUnique(p.Moods, mood) }

// AddLocation records a preferred location, skipping duplicates.
func (p *Profile) AddLocation(loc string) { p.Locations = appendUnique(p.Locations, loc) }

// Clear drops all declared preferences.
func (p *Profile) Clear() { p.Themes, p.Moods, p.Locations = nil, nil, nil }

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, have := range list {
		if have == v {
			return list
		}
	}
	return append(list, v)
}

// Filters restricts the candidate set before any scoring happens. Empty
// fields are inactive; substring matches are case-insensitive.
type Filters struct {
	Location     string `json:"location,omitempty"`
	Theme        string `json:"theme,omitempty"`
	Mood         string `json:"mood,omitempty"`
	UpcomingOnly bool   `json:"upcomingOnly,omitempty"`
}

// ScoredEvent pairs an event with its relevance score or similarity.
type ScoredEvent struct {
	Event Event   `json:"event"`
	Score float64 `json:"score"`
}

// SearchResult is the outcome of one search call. Ranked is false when the
// query was blank: the events are the filtered set in table order and the
// scores are undefined.
type SearchResult struct {
	Events []ScoredEvent `json:"events"`
	Ranked bool          `json:"ranked"`
}
