package ingest

import (
	"time"

	"github.com/civicmatch/eventfinder/internal/model"
)

// demoRows is a small synthetic catalog used when the primary source is
// unavailable. Rows go through the same normalization path as real data so
// identifiers and derived fields behave identically.
var demoRows = []PrimaryRow{
	{OppID: "demo-001", Title: "Community Garden Volunteer", Description: "Help maintain community gardens in Brooklyn. Weeding, planting and composting with neighbors.", OrgTitle: "GreenThumb NYC", Theme: "Environment", Mood: "Outdoorsy", Locality: "Brooklyn", Effort: "2-3 hours", Weather: "Outdoor"},
	{OppID: "demo-002", Title: "Youth Tutoring Program", Description: "Tutor math and reading for elementary school students after class.", OrgTitle: "City Tutors", Theme: "Education", Mood: "Patient", Locality: "Queens", Effort: "1-2 hours", Weather: "Indoor"},
	{OppID: "demo-003", Title: "Food Bank Sorting Shift", Description: "Sort and pack donated groceries at a local food bank warehouse.", OrgTitle: "Feeding Five Boroughs", Theme: "Hunger", Mood: "Hands-on", Locality: "Bronx", Effort: "3-4 hours", Weather: "Indoor"},
	{OppID: "demo-004", Title: "Animal Shelter Dog Walking", Description: "Walk shelter dogs and help with feeding and socialization.", OrgTitle: "Paws & Hearts", Theme: "Animals", Mood: "Active", Locality: "Manhattan", Effort: "1-2 hours", Weather: "Outdoor"},
	{OppID: "demo-005", Title: "Senior Center Visits", Description: "Spend time with older adults: board games, conversation and light reading aloud.", OrgTitle: "Silver Circle", Theme: "Seniors", Mood: "Calm", Locality: "Staten Island", Effort: "1-2 hours", Weather: "Indoor"},
	{OppID: "demo-006", Title: "Park Cleanup Day", Description: "Join a weekend cleanup crew removing litter and clearing trails in city parks.", OrgTitle: "Friends of the Parks", Theme: "Environment", Mood: "Energetic", Locality: "Brooklyn", Effort: "Half day", Weather: "Outdoor"},
	{OppID: "demo-007", Title: "Soup Kitchen Meal Service", Description: "Prepare and serve hot meals for guests at an evening soup kitchen.", OrgTitle: "Open Table", Theme: "Hunger", Mood: "Welcoming", Locality: "Manhattan", Effort: "2-3 hours", Weather: "Indoor"},
	{OppID: "demo-008", Title: "Museum Family Day Helper", Description: "Guide families through hands-on art activities at a children's museum.", OrgTitle: "Little Makers Museum", Theme: "Arts", Mood: "Creative", Locality: "Queens", Effort: "Half day", Weather: "Indoor"},
}

// DemoEvents returns the synthetic fallback catalog, clearly labeled so it is
// never mistaken for real data.
func DemoEvents(now time.Time) []model.Event {
	events := Normalize(demoRows, nil, now)
	for i := range events {
		events[i].ExtraTags = append(events[i].ExtraTags, "sample data")
	}
	return events
}
