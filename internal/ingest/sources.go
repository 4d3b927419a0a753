package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/civicmatch/eventfinder/internal/model"
)

// PrimaryRow is one raw record from the primary event source. Fields absent
// from the file arrive here as empty strings, never as a null marker.
type PrimaryRow struct {
	OppID       string
	Title       string
	Description string
	OrgTitle    string
	Theme       string
	Mood        string
	StartDate   string
	Locality    string
	Borough     string
	Effort      string
	Weather     string
}

// SecondaryRow is one raw record from the optional location-enrichment
// source, keyed by the shared opportunity identifier.
type SecondaryRow struct {
	OppID    string
	Locality string
	Borough  string
}

// Source files are heterogeneous exports; each logical field may appear
// under several header names. The first present candidate wins.
var primaryColumns = map[string][]string{
	"opp_id":      {"opportunity_id", "opp_id", "vol_requests_id", "id"},
	"title":       {"title", "event_title"},
	"description": {"description", "summary", "details"},
	"org_title":   {"org_title", "organization", "org_name"},
	"theme":       {"theme", "category"},
	"mood":        {"mood", "vibe"},
	"start_date":  {"start_date", "start_date_date", "date"},
	"locality":    {"locality", "city"},
	"borough":     {"borough"},
	"effort":      {"effort", "effort_estimate", "hours"},
	"weather":     {"weather", "weather_suitability"},
}

var secondaryColumns = map[string][]string{
	"opp_id":   {"opportunity_id", "opp_id", "vol_requests_id", "id"},
	"locality": {"locality", "city"},
	"borough":  {"borough"},
}

// ReadPrimary loads the required primary source. A missing or unreadable
// file is reported as model.ErrDataUnavailable.
func ReadPrimary(path string) ([]PrimaryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrDataUnavailable, path, err)
	}
	defer func() { _ = f.Close() }()

	header, records, err := readTable(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrDataUnavailable, path, err)
	}

	cols := resolveColumns(header, primaryColumns)
	rows := make([]PrimaryRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, PrimaryRow{
			OppID:       field(rec, cols, "opp_id"),
			Title:       field(rec, cols, "title"),
			Description: field(rec, cols, "description"),
			OrgTitle:    field(rec, cols, "org_title"),
			Theme:       field(rec, cols, "theme"),
			Mood:        field(rec, cols, "mood"),
			StartDate:   field(rec, cols, "start_date"),
			Locality:    field(rec, cols, "locality"),
			Borough:     field(rec, cols, "borough"),
			Effort:      field(rec, cols, "effort"),
			Weather:     field(rec, cols, "weather"),
		})
	}
	return rows, nil
}

// ReadSecondary loads the optional location source. Errors here are the
// caller's cue to degrade, not to abort.
func ReadSecondary(path string) ([]SecondaryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	header, records, err := readTable(f)
	if err != nil {
		return nil, err
	}

	cols := resolveColumns(header, secondaryColumns)
	rows := make([]SecondaryRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, SecondaryRow{
			OppID:    field(rec, cols, "opp_id"),
			Locality: field(rec, cols, "locality"),
			Borough:  field(rec, cols, "borough"),
		})
	}
	return rows, nil
}

func readTable(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty table")
	}
	return all[0], all[1:], nil
}

// resolveColumns maps each logical field to the index of the first matching
// header candidate, or -1 when the source lacks the field entirely.
func resolveColumns(header []string, candidates map[string][]string) map[string]int {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := make(map[string]int, len(candidates))
	for logical, names := range candidates {
		cols[logical] = -1
		for _, name := range names {
			if i, ok := byName[name]; ok {
				cols[logical] = i
				break
			}
		}
	}
	return cols
}

func field(rec []string, cols map[string]int, logical string) string {
	i := cols[logical]
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
