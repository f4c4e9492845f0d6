package memory

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/pkg/log"
)

const (
	defaultLocale = "en"

	// Thresholds for the knowledge heuristic: prose shorter than this
	// is treated as chatter, not explanatory material.
	knowledgeMinLen   = 120
	knowledgeMinWords = 15
)

// localePhrases maps a locale to the first-person marker phrases that
// flag a turn as a fact about the user. Matching is lower-cased
// substring containment.
var localePhrases = map[string][]string{
	"en": {
		"my name is", "call me", "i like", "i love", "i prefer",
		"i hate", "i enjoy", "i work", "i live", "i am ", "i'm ",
		"my favorite",
	},
	"ru": {
		"меня зовут", "мне нравится", "я люблю", "я предпочитаю",
		"я ненавижу", "я работаю", "я живу",
	},
	"es": {
		"me llamo", "mi nombre es", "me gusta", "me encanta",
		"prefiero", "odio", "trabajo en", "vivo en",
	},
}

type classifierRule struct {
	kind    core.Kind
	matches func(text string) bool
}

// Extractor decides which conversational turns are worth remembering
// and under which classification. It is a deterministic keyword and
// length heuristic, not a model: the same input always classifies the
// same way.
type Extractor struct {
	memories *Service
	rules    []classifierRule
}

// NewExtractor builds the rule set for a locale; unknown locales fall
// back to English markers.
func NewExtractor(memories *Service, locale string) *Extractor {
	phrases, ok := localePhrases[locale]
	if !ok {
		phrases = localePhrases[defaultLocale]
	}

	return &Extractor{
		memories: memories,
		rules: []classifierRule{
			{kind: core.KindUserFact, matches: phraseMatcher(phrases)},
			{kind: core.KindKnowledge, matches: substantive},
		},
	}
}

// Classify returns the classification for a turn, or false when the
// turn is not worth remembering. Rules are evaluated in order and the
// first match wins, so a turn is never stored under two kinds.
func (e *Extractor) Classify(text string) (core.Kind, bool) {
	for _, rule := range e.rules {
		if rule.matches(text) {
			return rule.kind, true
		}
	}
	return "", false
}

// ProcessTurn classifies a turn and stores it unless it duplicates an
// existing memory. The returned bool reports whether a new entry was
// created.
func (e *Extractor) ProcessTurn(ctx context.Context, text string) (core.MemoryEntry, bool, error) {
	kind, ok := e.Classify(text)
	if !ok {
		return core.MemoryEntry{}, false, nil
	}

	entry, created, err := e.memories.Remember(ctx, core.EntryDraft{
		Content:  text,
		Kind:     kind,
		Metadata: map[string]string{"source": "extractor"},
	})
	if err != nil {
		return core.MemoryEntry{}, false, err
	}
	if created {
		log.FromCtx(ctx).Info().
			Str("kind", string(kind)).
			Msg("Memory extracted")
	}
	return entry, created, nil
}

func phraseMatcher(phrases []string) func(string) bool {
	return func(text string) bool {
		lower := strings.ToLower(text)
		for _, phrase := range phrases {
			if strings.Contains(lower, phrase) {
				return true
			}
		}
		return false
	}
}

// substantive flags longer explanatory prose worth keeping as general
// knowledge.
func substantive(text string) bool {
	trimmed := strings.TrimSpace(text)
	return utf8.RuneCountInString(trimmed) >= knowledgeMinLen &&
		len(strings.Fields(trimmed)) >= knowledgeMinWords
}
