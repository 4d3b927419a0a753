package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicmatch/eventfinder/internal/model"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNormalize_DerivedFields(t *testing.T) {
	primary := []PrimaryRow{{
		OppID:       "42",
		Title:       "Community Garden Volunteer",
		Description: "Help maintain gardens in Brooklyn",
		OrgTitle:    "GreenThumb",
		Theme:       "Environment",
		Mood:        "Outdoorsy",
		StartDate:   "2026-03-15",
	}}
	secondary := []SecondaryRow{{OppID: "42", Locality: "Park Slope", Borough: "Brooklyn"}}

	events := Normalize(primary, secondary, testNow)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]

	if ev.LocationDisplay != "Park Slope, Brooklyn" {
		t.Errorf("location: got %q", ev.LocationDisplay)
	}
	if ev.CombinedText != "community garden volunteer help maintain gardens in brooklyn environment outdoorsy greenthumb park slope, brooklyn" {
		t.Errorf("combined text: got %q", ev.CombinedText)
	}
	if !ev.IsUpcoming {
		t.Error("event 14 days out should be upcoming")
	}
	if ev.DaysUntil != 13 && ev.DaysUntil != 14 {
		t.Errorf("days until: got %d", ev.DaysUntil)
	}
	if ev.ShortSummary != "Help maintain gardens in Brooklyn..." {
		t.Errorf("short summary: got %q", ev.ShortSummary)
	}
}

func TestNormalize_MissingFieldsBecomeEmptyStrings(t *testing.T) {
	events := Normalize([]PrimaryRow{{Title: "Bare Event"}}, nil, testNow)
	ev := events[0]
	if ev.Description != "" || ev.OrgTitle != "" || ev.Theme != "" || ev.Mood != "" {
		t.Fatalf("missing fields should normalize to empty strings: %+v", ev)
	}
	if ev.LocationDisplay != DefaultLocation {
		t.Fatalf("expected placeholder location, got %q", ev.LocationDisplay)
	}
	if ev.StartDate != nil || ev.IsUpcoming {
		t.Fatalf("missing start date should leave upcoming false")
	}
}

func TestNormalize_DeterministicEventIDs(t *testing.T) {
	primary := []PrimaryRow{
		{OppID: "7", Title: "Beach Cleanup"},
		{Title: "Untagged Event", Description: "no opportunity id"},
	}

	first := Normalize(primary, nil, testNow)
	second := Normalize(primary, nil, testNow)

	for i := range first {
		if first[i].EventID == "" {
			t.Fatalf("event %d has empty id", i)
		}
		if first[i].EventID != second[i].EventID {
			t.Fatalf("event %d id not stable across runs: %s vs %s", i, first[i].EventID, second[i].EventID)
		}
	}
	if first[0].EventID == first[1].EventID {
		t.Fatal("distinct rows derived the same id")
	}
}

func TestNormalize_UnmatchedJoinKeepsPlaceholder(t *testing.T) {
	primary := []PrimaryRow{{OppID: "1", Title: "A"}, {OppID: "2", Title: "B"}}
	secondary := []SecondaryRow{{OppID: "1", Borough: "Queens"}}

	events := Normalize(primary, secondary, testNow)
	if events[0].LocationDisplay != "Queens" {
		t.Errorf("matched row: got %q", events[0].LocationDisplay)
	}
	if events[1].LocationDisplay != DefaultLocation {
		t.Errorf("unmatched row should keep placeholder, got %q", events[1].LocationDisplay)
	}
}

func TestLoad_MissingPrimaryIsDataUnavailable(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "absent.csv"), filepath.Join(dir, "locations.csv"), testNow, zerolog.Nop())
	if !errors.Is(err, model.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestLoad_MissingSecondaryDegrades(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "events.csv")
	csv := "opportunity_id,title,description,org_title,locality\n9,Tree Planting,Plant trees,Parks Dept,Harlem\n"
	if err := os.WriteFile(primary, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	events, err := Load(primary, filepath.Join(dir, "absent.csv"), testNow, zerolog.Nop())
	if err != nil {
		t.Fatalf("load with missing secondary should succeed: %v", err)
	}
	if len(events) != 1 || events[0].LocationDisplay != "Harlem" {
		t.Fatalf("expected locality from primary, got %+v", events)
	}
}

func TestDemoEvents_Labeled(t *testing.T) {
	events := DemoEvents(testNow)
	if len(events) == 0 {
		t.Fatal("demo dataset is empty")
	}
	for _, ev := range events {
		labeled := false
		for _, tag := range ev.ExtraTags {
			if tag == "sample data" {
				labeled = true
			}
		}
		if !labeled {
			t.Fatalf("demo event %q not labeled as sample data", ev.Title)
		}
	}
}
