// Package ingest normalizes heterogeneous event exports into the canonical
// event table the index and scorer operate on.
package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/civicmatch/eventfinder/internal/model"
)

// DefaultLocation is the placeholder for rows with no locality information
// in either source.
const DefaultLocation = "New York, NY"

const summaryLength = 150

// Namespace for name-based event IDs. Fixed so that identical input rows
// always derive identical identifiers across runs.
var idNamespace = uuid.MustParse("8f1e6a02-3c54-4d8b-9b1f-7a2e0c6d4e10")

var startDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// Load reads both sources and returns the canonical table. A missing primary
// source is fatal (model.ErrDataUnavailable); a missing secondary source
// degrades to whatever locality fields the primary carries.
func Load(primaryPath, secondaryPath string, now time.Time, log zerolog.Logger) ([]model.Event, error) {
	primary, err := ReadPrimary(primaryPath)
	if err != nil {
		return nil, err
	}

	secondary, err := ReadSecondary(secondaryPath)
	if err != nil {
		log.Warn().Err(err).Str("path", secondaryPath).
			Msg("secondary location source unavailable, running with degraded enrichment")
		secondary = nil
	}

	events := Normalize(primary, secondary, now)
	log.Info().Int("events", len(events)).Msg("event table loaded")
	return events, nil
}

// Normalize merges the primary rows with optional location enrichment and
// derives the canonical fields. The output order follows the primary source.
func Normalize(primary []PrimaryRow, secondary []SecondaryRow, now time.Time) []model.Event {
	locByOpp := make(map[string]SecondaryRow, len(secondary))
	for _, row := range secondary {
		if row.OppID != "" {
			locByOpp[row.OppID] = row
		}
	}

	events := make([]model.Event, 0, len(primary))
	for i, row := range primary {
		ev := model.Event{
			EventID:     deriveEventID(row, i),
			Title:       row.Title,
			Description: row.Description,
			OrgTitle:    row.OrgTitle,
			Theme:       row.Theme,
			Mood:        row.Mood,
		}

		ev.LocationDisplay = locationDisplay(row, locByOpp)
		ev.ShortSummary = shortSummary(row.Description)
		ev.ExtraTags = extraTags(row)

		if start, ok := parseStartDate(row.StartDate); ok {
			ev.StartDate = &start
			ev.IsUpcoming = !start.Before(now)
			ev.DaysUntil = int(start.Sub(now).Hours() / 24)
		}

		ev.CombinedText = CombinedText(ev)
		events = append(events, ev)
	}
	return events
}

// CombinedText derives the lower-cased searchable text for an event. It must
// be recomputed whenever a constituent field changes, never hand-edited.
func CombinedText(ev model.Event) string {
	parts := []string{ev.Title, ev.Description, ev.Theme, ev.Mood, ev.OrgTitle, ev.LocationDisplay}
	return strings.ToLower(strings.Join(parts, " "))
}

// deriveEventID builds a stable identifier from the source opportunity id
// plus a truncated title, falling back to row position plus content when the
// source carries no identifier. Name-based UUIDs keep the derivation free of
// iteration-order effects.
func deriveEventID(row PrimaryRow, position int) string {
	title := row.Title
	if len(title) > 40 {
		title = title[:40]
	}
	if row.OppID != "" {
		return uuid.NewSHA1(idNamespace, []byte(row.OppID+"|"+title)).String()
	}
	content := row.Title + "|" + row.Description + "|" + row.OrgTitle
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%d|%s", position, content))).String()
}

func locationDisplay(row PrimaryRow, locByOpp map[string]SecondaryRow) string {
	if enriched, ok := locByOpp[row.OppID]; ok {
		if loc := joinLocation(enriched.Locality, enriched.Borough); loc != "" {
			return loc
		}
	}
	if loc := joinLocation(row.Locality, row.Borough); loc != "" {
		return loc
	}
	return DefaultLocation
}

func joinLocation(locality, borough string) string {
	switch {
	case locality != "" && borough != "" && !strings.EqualFold(locality, borough):
		return locality + ", " + borough
	case locality != "":
		return locality
	case borough != "":
		return borough
	default:
		return ""
	}
}

func shortSummary(description string) string {
	runes := []rune(description)
	if len(runes) > summaryLength {
		runes = runes[:summaryLength]
	}
	return string(runes) + "..."
}

func extraTags(row PrimaryRow) []string {
	var tags []string
	if row.Effort != "" {
		tags = append(tags, row.Effort)
	}
	if row.Weather != "" {
		tags = append(tags, row.Weather)
	}
	return tags
}

func parseStartDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
