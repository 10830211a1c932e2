package search

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vaidya/internal/domain/corpus"
	"github.com/kailas-cloud/vaidya/internal/domain/search/kind"
	"github.com/kailas-cloud/vaidya/internal/domain/search/result"
)

// --- Mocks ---

type mockCorpus struct {
	articles []corpus.Article
	remedies []corpus.Remedy
	excerpts []corpus.TextExcerpt
	guides   []corpus.DoshaGuide
}

func (m *mockCorpus) Articles() []corpus.Article         { return m.articles }
func (m *mockCorpus) Remedies() []corpus.Remedy          { return m.remedies }
func (m *mockCorpus) TextExcerpts() []corpus.TextExcerpt { return m.excerpts }
func (m *mockCorpus) DoshaGuides() []corpus.DoshaGuide   { return m.guides }

func sleepCorpus() *mockCorpus {
	return &mockCorpus{
		articles: []corpus.Article{
			{ID: "art-sleep", Title: "Understanding Insomnia", Excerpt: "Sleep troubles often stem from an overactive mind.", Tags: []string{"sleep"}},
			{ID: "art-digest", Title: "Kindling Agni", Excerpt: "Digestive fire governs metabolism.", Tags: []string{"digestion"}},
		},
		remedies: []corpus.Remedy{
			{ID: "rem-sleep", Problem: "Insomnia", Remedy: "Drink warm milk with nutmeg before bed.", Rationale: "Nutmeg calms vata and promotes sleep.", Citation: "Bhavaprakasha"},
			{ID: "rem-acid", Problem: "Acid reflux", Remedy: "Sip fennel tea after meals.", Rationale: "Fennel cools pitta."},
		},
		excerpts: []corpus.TextExcerpt{
			{ID: "txt-nidra", Title: "On Sleep", Body: "Nidra is one of the three pillars of life.", Keywords: []string{"sleep", "nidra"}, Source: "Charaka Samhita"},
		},
		guides: []corpus.DoshaGuide{vataGuide()},
	}
}

func newTestService(c CorpusReader) *Service {
	return New(c, zap.NewNop())
}

// --- Tests ---

func TestSearch_RanksAcrossKinds(t *testing.T) {
	svc := newTestService(sleepCorpus())

	results := svc.Search(context.Background(), "I can't sleep at night")
	if len(results) == 0 {
		t.Fatal("expected results")
	}

	// txt-nidra 75, art-sleep 45, vata-1 35 (cause "night" + symptom "light sleep"), rem-sleep 25
	want := []string{"txt-nidra", "art-sleep", "vata-1", "rem-sleep"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %v", len(want), len(results), ids(results))
	}
	for i, id := range want {
		if results[i].ID() != id {
			t.Errorf("results[%d] = %s, want %s", i, results[i].ID(), id)
		}
	}
	if results[3].Kind() != kind.Remedy || results[3].Citation() != "Bhavaprakasha" {
		t.Errorf("unexpected remedy mapping: %+v", results[3])
	}
	if results[2].Title() != "Vata Dosha - Insomnia" {
		t.Errorf("unexpected dosha title %q", results[2].Title())
	}
}

func TestSearch_Deterministic(t *testing.T) {
	svc := newTestService(sleepCorpus())
	ctx := context.Background()

	first := svc.Search(ctx, "anxiety and poor sleep")
	second := svc.Search(ctx, "anxiety and poor sleep")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("search not deterministic:\n%v\n%v", ids(first), ids(second))
	}
}

func TestSearch_NoMatch(t *testing.T) {
	svc := newTestService(sleepCorpus())
	if results := svc.Search(context.Background(), "xyzzy plugh"); len(results) != 0 {
		t.Errorf("expected no results, got %v", ids(results))
	}
}

func TestSearch_BlankQuery(t *testing.T) {
	svc := newTestService(sleepCorpus())
	if results := svc.Search(context.Background(), "   "); results != nil {
		t.Errorf("expected nil results, got %v", ids(results))
	}
}

func TestSearch_TopKCap(t *testing.T) {
	c := &mockCorpus{}
	for i := range 8 {
		c.remedies = append(c.remedies, corpus.Remedy{
			ID: fmt.Sprintf("rem-%d", i), Problem: "Insomnia", Remedy: "Rest", Rationale: "Calms",
		})
	}
	svc := newTestService(c)

	results := svc.Search(context.Background(), "insomnia")
	if len(results) != DefaultTopK {
		t.Fatalf("expected %d results, got %d", DefaultTopK, len(results))
	}
	for i, r := range results {
		if r.ID() != fmt.Sprintf("rem-%d", i) {
			t.Errorf("results[%d] = %s, ties must keep corpus order", i, r.ID())
		}
	}
}

func TestSearch_WithTopK(t *testing.T) {
	svc := newTestService(sleepCorpus()).WithTopK(1)
	if results := svc.Search(context.Background(), "I can't sleep at night"); len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	svc = newTestService(sleepCorpus()).WithTopK(0)
	if svc.topK != DefaultTopK {
		t.Errorf("non-positive top-K must be ignored, got %d", svc.topK)
	}
}

func TestSearch_RemedyThreshold(t *testing.T) {
	c := &mockCorpus{remedies: []corpus.Remedy{
		// rationale word 10 + extra "rest" in remedy 8 = 18
		{ID: "below", Problem: "Cold feet", Remedy: "Take rest near a fire", Rationale: "Warmth helps sleep"},
		// remedy word 20
		{ID: "at", Problem: "Cold feet", Remedy: "Sleep with socks", Rationale: "Keeps feet warm"},
	}}
	svc := newTestService(c)

	results := svc.Search(context.Background(), "sleep")
	if len(results) != 1 || results[0].ID() != "at" {
		t.Fatalf("expected only the remedy at threshold, got %v", ids(results))
	}
	if results[0].Score() != 20 {
		t.Errorf("score = %d, want 20", results[0].Score())
	}
}

func TestSearch_ThresholdBoundary(t *testing.T) {
	c := &mockCorpus{remedies: []corpus.Remedy{
		{ID: "r", Problem: "Cold feet", Remedy: "Sleep with socks", Rationale: "Keeps feet warm"},
	}}

	w := DefaultWeights()
	w.Remedy.RemedyWord = 19
	if results := newTestService(c).WithWeights(w).Search(context.Background(), "sleep"); len(results) != 0 {
		t.Errorf("remedy scoring 19 must be excluded, got %v", ids(results))
	}

	w.Remedy.RemedyWord = 20
	if results := newTestService(c).WithWeights(w).Search(context.Background(), "sleep"); len(results) != 1 {
		t.Errorf("remedy scoring 20 must be included, got %v", ids(results))
	}
}

func TestSearch_DoshaIssueRequiresMatch(t *testing.T) {
	svc := newTestService(&mockCorpus{guides: []corpus.DoshaGuide{vataGuide()}})

	if results := svc.Search(context.Background(), "dry skin"); len(results) != 0 {
		t.Errorf("symptom-only hit must be discarded, got %v", ids(results))
	}

	results := svc.Search(context.Background(), "anxiety")
	if len(results) != 1 {
		t.Fatalf("expected 1 dosha issue, got %v", ids(results))
	}
	r := results[0]
	if r.Kind() != kind.DoshaIssue || r.ID() != "vata-0" {
		t.Errorf("unexpected result %s/%s", r.Kind(), r.ID())
	}
	if r.Title() != "Vata Dosha - Anxiety" || r.Excerpt() != "Follow a daily routine" {
		t.Errorf("unexpected projection: %q / %q", r.Title(), r.Excerpt())
	}
}

func ids(rs []result.Result) []string {
	out := make([]string, len(rs))
	for i := range rs {
		out[i] = rs[i].ID()
	}
	return out
}
