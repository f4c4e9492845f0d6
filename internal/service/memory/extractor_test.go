package memory

import (
	"context"
	"testing"

	"github.com/sandevgo/membot/internal/core"
)

const explanatoryText = "The Go scheduler multiplexes goroutines onto OS threads using " +
	"a work-stealing algorithm, parking idle processors and handing off runnable " +
	"goroutines whenever a thread blocks inside a system call."

func TestClassify(t *testing.T) {
	ex := NewExtractor(nil, "en")

	tests := []struct {
		name string
		text string
		kind core.Kind
		ok   bool
	}{
		{"name introduction", "My name is John and I like Python programming", core.KindUserFact, true},
		{"preference", "Honestly, I prefer tea over coffee", core.KindUserFact, true},
		{"marker is case insensitive", "MY NAME IS SARAH", core.KindUserFact, true},
		{"explanatory prose", explanatoryText, core.KindKnowledge, true},
		{"greeting", "hello there", "", false},
		{"question", "What time is the meeting tomorrow?", "", false},
		{"short statement", "The server restarted.", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := ex.Classify(tt.text)
			if ok != tt.ok || kind != tt.kind {
				t.Errorf("Classify(%q) = (%q, %v), want (%q, %v)", tt.text, kind, ok, tt.kind, tt.ok)
			}
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	ex := NewExtractor(nil, "en")

	// Long enough to pass the knowledge heuristic, but the
	// first-person marker claims it first.
	text := "I like long-form writing about distributed systems: consensus protocols, " +
		"replication strategies, failure detectors, and the operational realities of " +
		"running quorum-based storage in production environments."

	kind, ok := ex.Classify(text)
	if !ok || kind != core.KindUserFact {
		t.Errorf("Classify = (%q, %v), want (%q, true)", kind, ok, core.KindUserFact)
	}
}

func TestClassifyLocales(t *testing.T) {
	tests := []struct {
		locale string
		text   string
	}{
		{"ru", "Меня зовут Иван"},
		{"ru", "Я люблю шахматы"},
		{"es", "Me llamo Carlos"},
		{"es", "Me gusta el café con leche"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+" "+tt.text, func(t *testing.T) {
			ex := NewExtractor(nil, tt.locale)
			kind, ok := ex.Classify(tt.text)
			if !ok || kind != core.KindUserFact {
				t.Errorf("Classify(%q) = (%q, %v), want user_fact", tt.text, kind, ok)
			}
		})
	}
}

func TestClassifyUnknownLocaleFallsBack(t *testing.T) {
	ex := NewExtractor(nil, "tlh")

	kind, ok := ex.Classify("I like opera in the original Klingon")
	if !ok || kind != core.KindUserFact {
		t.Errorf("expected English fallback to match, got (%q, %v)", kind, ok)
	}
}

func TestProcessTurnStoresOnce(t *testing.T) {
	svc := newTestService(t)
	ex := NewExtractor(svc, "en")
	ctx := context.Background()

	sentence := "My name is John and I like Python programming"

	entry, created, err := ex.ProcessTurn(ctx, sentence)
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if !created {
		t.Fatal("expected first turn to be stored")
	}
	if entry.Kind != core.KindUserFact {
		t.Errorf("expected user_fact, got %q", entry.Kind)
	}

	_, created, err = ex.ProcessTurn(ctx, sentence)
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if created {
		t.Error("expected repeated sentence to be suppressed")
	}

	results, err := svc.Search(ctx, core.SearchQuery{Query: sentence})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 entry, got %d", len(results))
	}
	if results[0].Entry.Content != sentence {
		t.Errorf("unexpected stored content: %q", results[0].Entry.Content)
	}
}

func TestProcessTurnIgnoresChatter(t *testing.T) {
	svc := newTestService(t)
	ex := NewExtractor(svc, "en")
	ctx := context.Background()

	_, created, err := ex.ProcessTurn(ctx, "thanks, that helps")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if created {
		t.Error("expected chatter to be ignored")
	}

	count, err := svc.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty store, got %d entries", count)
	}
}
