package recommend

import (
	"testing"
	"time"

	"github.com/civicmatch/eventfinder/internal/index"
	"github.com/civicmatch/eventfinder/internal/ingest"
	"github.com/civicmatch/eventfinder/internal/model"
)

func fixture() ([]model.Event, *index.Index) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []ingest.PrimaryRow{
		{OppID: "a", Title: "Community Garden Volunteer", Description: "Help maintain gardens in Brooklyn", OrgTitle: "GreenThumb", Theme: "Environment", Locality: "Brooklyn"},
		{OppID: "b", Title: "Youth Tutoring", Description: "Tutor math reading", OrgTitle: "City Tutors", Theme: "Education", Locality: "Queens"},
		{OppID: "c", Title: "Park Cleanup", Description: "Clear litter from Brooklyn parks", OrgTitle: "Friends of the Parks", Theme: "Environment", Locality: "Brooklyn"},
	}
	events := ingest.Normalize(rows, nil, now)
	docs := make([]string, len(events))
	for i, ev := range events {
		docs[i] = ev.CombinedText
	}
	return events, index.Build(docs)
}

func TestSimilarTo_ExcludesSelf(t *testing.T) {
	events, ix := fixture()
	for i := range events {
		got := SimilarTo(events, ix, i, len(events))
		for _, se := range got {
			if se.Event.EventID == events[i].EventID {
				t.Fatalf("similar_to(%d) returned the event itself", i)
			}
		}
		if len(got) != len(events)-1 {
			t.Fatalf("expected %d neighbors, got %d", len(events)-1, len(got))
		}
	}
}

func TestSimilarTo_OutOfRangeIsEmpty(t *testing.T) {
	events, ix := fixture()
	if got := SimilarTo(events, ix, len(events), 5); len(got) != 0 {
		t.Fatalf("index past the matrix bound must return empty, got %d", len(got))
	}
	if got := SimilarTo(events, ix, -1, 5); len(got) != 0 {
		t.Fatalf("negative index must return empty, got %d", len(got))
	}
}

func TestSimilarTo_RanksSharedVocabularyFirst(t *testing.T) {
	events, ix := fixture()
	// Garden (a) shares brooklyn/environment vocabulary with cleanup (c) and
	// nearly nothing with tutoring (b).
	got := SimilarTo(events, ix, 0, 2)
	if got[0].Event.Title != "Park Cleanup" {
		t.Fatalf("expected the cleanup event first, got %q", got[0].Event.Title)
	}
	if got[0].Score <= 0 || got[0].Score >= 1 {
		t.Fatalf("partial-overlap similarity must be strictly inside (0,1), got %f", got[0].Score)
	}
}

func TestSimilarTo_TopKTrims(t *testing.T) {
	events, ix := fixture()
	if got := SimilarTo(events, ix, 0, 1); len(got) != 1 {
		t.Fatalf("k=1 should return one neighbor, got %d", len(got))
	}
}

func TestForProfile_UsesFittedVectorizer(t *testing.T) {
	events, ix := fixture()
	got := ForProfile(events, ix, []string{"environment"}, nil, 3)
	if len(got) == 0 {
		t.Fatal("expected recommendations for a known theme")
	}
	if got[0].Event.Theme != "Environment" {
		t.Fatalf("expected an environment event first, got %q", got[0].Event.Theme)
	}
	if got[0].Score <= 0 {
		t.Fatalf("matching theme should have positive similarity, got %f", got[0].Score)
	}
	// The last-ranked event shares no vocabulary with the profile.
	if last := got[len(got)-1]; last.Event.Title != "Youth Tutoring" {
		t.Fatalf("expected the tutoring event last, got %q", last.Event.Title)
	}
}

func TestForProfile_EmptyProfileIsEmpty(t *testing.T) {
	events, ix := fixture()
	if got := ForProfile(events, ix, nil, nil, 3); len(got) != 0 {
		t.Fatalf("empty profile must return no recommendations, got %d", len(got))
	}
}

func TestForProfile_UnknownTermsYieldZeroSimilarity(t *testing.T) {
	events, ix := fixture()
	got := ForProfile(events, ix, []string{"zzzz"}, nil, 3)
	for _, se := range got {
		if se.Score != 0 {
			t.Fatalf("out-of-vocabulary profile should score 0 everywhere, got %f", se.Score)
		}
	}
}
