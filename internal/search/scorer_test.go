package search

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicmatch/eventfinder/internal/ingest"
	"github.com/civicmatch/eventfinder/internal/model"
)

var testNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func fixtureEvents() []model.Event {
	rows := []ingest.PrimaryRow{
		{OppID: "a", Title: "Community Garden Volunteer", Description: "Help maintain gardens in Brooklyn", OrgTitle: "NYC Service", Theme: "Environment", Locality: "Brooklyn", StartDate: "2026-03-10"},
		{OppID: "b", Title: "Youth Tutoring", Description: "Tutor math reading", OrgTitle: "NYC Service", Theme: "Education", Locality: "Queens", StartDate: "2026-02-10"},
	}
	return ingest.Normalize(rows, nil, testNow)
}

func newScorer(events []model.Event) *Scorer {
	return New(events, nil, nil, zerolog.Nop())
}

func TestScore_VerbatimQueryOutranks(t *testing.T) {
	events := fixtureEvents()
	res := newScorer(events).Score(context.Background(), "garden", model.Filters{}, model.Profile{}, nil)

	if !res.Ranked {
		t.Fatal("non-blank query must produce a ranked result")
	}
	if res.Events[0].Event.Title != "Community Garden Volunteer" {
		t.Fatalf("query 'garden' should rank the garden event first, got %q", res.Events[0].Event.Title)
	}
	if res.Events[0].Score < 10 {
		t.Fatalf("verbatim match should carry the phrase bonus, got %f", res.Events[0].Score)
	}
	if res.Events[1].Score != 0 {
		t.Fatalf("event without any match should score 0, got %f", res.Events[1].Score)
	}
}

func TestScore_SynonymExpansion(t *testing.T) {
	events := fixtureEvents()
	res := newScorer(events).Score(context.Background(), "kids", model.Filters{}, model.Profile{}, nil)

	// "kids" appears in neither event; expansion adds youth/tutoring/... so
	// the tutoring event must outrank the garden event.
	if res.Events[0].Event.Title != "Youth Tutoring" {
		t.Fatalf("query 'kids' should rank the tutoring event first, got %q", res.Events[0].Event.Title)
	}
	if res.Events[0].Score <= res.Events[1].Score {
		t.Fatalf("expected strict ordering, got %f vs %f", res.Events[0].Score, res.Events[1].Score)
	}
}

func TestScore_Deterministic(t *testing.T) {
	events := fixtureEvents()
	s := newScorer(events)
	first := s.Score(context.Background(), "volunteer help", model.Filters{}, model.Profile{}, nil)
	for run := 0; run < 5; run++ {
		again := s.Score(context.Background(), "volunteer help", model.Filters{}, model.Profile{}, nil)
		for i := range first.Events {
			if again.Events[i].Event.EventID != first.Events[i].Event.EventID || again.Events[i].Score != first.Events[i].Score {
				t.Fatalf("run %d produced a different ranking", run)
			}
		}
	}
}

func TestScore_LocationFilter(t *testing.T) {
	events := fixtureEvents()
	s := newScorer(events)

	res := s.Score(context.Background(), "volunteer", model.Filters{Location: "brooklyn"}, model.Profile{}, nil)
	if len(res.Events) != 1 || res.Events[0].Event.LocationDisplay != "Brooklyn" {
		t.Fatalf("location filter should keep only Brooklyn events: %+v", res.Events)
	}

	res = s.Score(context.Background(), "volunteer", model.Filters{Location: "chicago"}, model.Profile{}, nil)
	if len(res.Events) != 0 {
		t.Fatalf("filter matching nothing must yield an empty list, got %d", len(res.Events))
	}
}

func TestScore_UpcomingOnlyFilter(t *testing.T) {
	events := fixtureEvents()
	res := newScorer(events).Score(context.Background(), "volunteer", model.Filters{UpcomingOnly: true}, model.Profile{}, nil)
	for _, se := range res.Events {
		if !se.Event.IsUpcoming {
			t.Fatalf("past event %q leaked through upcoming-only filter", se.Event.Title)
		}
	}
	if len(res.Events) != 1 {
		t.Fatalf("expected exactly the upcoming event, got %d", len(res.Events))
	}
}

func TestScore_BlankQueryIsUnranked(t *testing.T) {
	events := fixtureEvents()
	res := newScorer(events).Score(context.Background(), "   ", model.Filters{}, model.Profile{}, nil)
	if res.Ranked {
		t.Fatal("blank query must not rank")
	}
	if len(res.Events) != len(events) {
		t.Fatalf("blank query should return the whole filtered set, got %d", len(res.Events))
	}
	for i, se := range res.Events {
		if se.Event.EventID != events[i].EventID {
			t.Fatal("blank query must preserve table order")
		}
	}
}

func TestScore_PreferenceBoost(t *testing.T) {
	events := fixtureEvents()
	s := newScorer(events)
	profile := model.Profile{}
	profile.AddTheme("environment")
	profile.AddLocation("Brooklyn")

	base := s.Score(context.Background(), "volunteer", model.Filters{}, model.Profile{}, nil)
	boosted := s.Score(context.Background(), "volunteer", model.Filters{}, profile, nil)

	var baseGarden, boostedGarden float64
	for _, se := range base.Events {
		if se.Event.Title == "Community Garden Volunteer" {
			baseGarden = se.Score
		}
	}
	for _, se := range boosted.Events {
		if se.Event.Title == "Community Garden Volunteer" {
			boostedGarden = se.Score
		}
	}
	// +2 theme, +1 location
	if boostedGarden-baseGarden != 3 {
		t.Fatalf("expected +3 preference boost, got %f", boostedGarden-baseGarden)
	}
}

func TestScore_RatingBoost(t *testing.T) {
	cases := []struct {
		name string
		sum  model.RatingSummary
		want float64
	}{
		{"no feedback", model.RatingSummary{}, 0},
		{"midpoint single review", model.RatingSummary{Mean: 3, Count: 1}, 0.1},
		{"high rating", model.RatingSummary{Mean: 5, Count: 2}, 1.2},
		{"below midpoint subtracts", model.RatingSummary{Mean: 1, Count: 1}, -0.9},
		{"count term capped", model.RatingSummary{Mean: 3, Count: 50}, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ratingBoost(tc.sum)
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("got %f, want %f", got, tc.want)
			}
		})
	}
}

type fakeProvider struct {
	vecs map[string][]float32
	err  error
}

func (f *fakeProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vecs[text]; ok {
		return v, nil
	}
	return []float32{0, 1}, nil
}

func TestScore_SemanticTerm(t *testing.T) {
	events := fixtureEvents()
	provider := &fakeProvider{vecs: map[string][]float32{"shelter": {1, 0}}}
	// Garden event aligned with the query, tutoring event orthogonal.
	eventVecs := [][]float32{{1, 0}, {0, 1}}

	s := New(events, provider, eventVecs, zerolog.Nop())
	res := s.Score(context.Background(), "shelter", model.Filters{}, model.Profile{}, nil)

	var garden, tutoring float64
	for _, se := range res.Events {
		switch se.Event.Title {
		case "Community Garden Volunteer":
			garden = se.Score
		case "Youth Tutoring":
			tutoring = se.Score
		}
	}
	// Neither event matches "shelter" lexically, so scores are pure semantic.
	if garden != 5 || tutoring != 0 {
		t.Fatalf("semantic scores: garden=%f tutoring=%f, want 5 and 0", garden, tutoring)
	}
}

func TestScore_EmbedFailureDegradesToLexical(t *testing.T) {
	events := fixtureEvents()
	provider := &fakeProvider{err: errors.New("model unavailable")}
	eventVecs := [][]float32{{1, 0}, {0, 1}}

	s := New(events, provider, eventVecs, zerolog.Nop())
	res := s.Score(context.Background(), "garden", model.Filters{}, model.Profile{}, nil)

	if !res.Ranked || res.Events[0].Event.Title != "Community Garden Volunteer" {
		t.Fatal("lexical ranking must survive an embedding failure")
	}
}

func TestExpandQuery_Additive(t *testing.T) {
	expanded := ExpandQuery("helping KIDS after school")
	if expanded == "helping kids after school" {
		t.Fatal("expected synonyms appended for 'kids'")
	}
	for _, original := range []string{"helping", "kids", "after", "school"} {
		found := false
		for _, w := range strings.Fields(expanded) {
			if w == original {
				found = true
			}
		}
		if !found {
			t.Fatalf("expansion dropped original term %q", original)
		}
	}
}
