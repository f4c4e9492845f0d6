package core

import "time"

// Kind classifies a stored memory entry.
type Kind string

const (
	KindUserFact  Kind = "user_fact"
	KindKnowledge Kind = "knowledge"
)

// ValidKind reports whether k is a known memory classification.
func ValidKind(k Kind) bool {
	return k == KindUserFact || k == KindKnowledge
}

// MemoryEntry is a single long-term memory record. Immutable once
// stored, except for deletion.
type MemoryEntry struct {
	ID        int64             `json:"id"`
	Content   string            `json:"content"`
	Kind      Kind              `json:"kind"`
	CreatedAt time.Time         `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// EntryDraft is the caller-supplied part of a MemoryEntry; the store
// assigns the id and timestamp on insert.
type EntryDraft struct {
	Content  string
	Kind     Kind
	Metadata map[string]string
}

// SearchQuery describes a ranked full-text search. Query is raw text;
// sanitization happens inside the store. Limit is clamped to [1,100],
// non-positive values fall back to DefaultSearchLimit. MinScore, when
// set, drops results scoring worse than it (scores are bm25 ranks:
// lower is better, so the filter keeps score <= *MinScore).
type SearchQuery struct {
	Query    string
	Limit    int
	MinScore *float64
}

const DefaultSearchLimit = 10

// SearchResult pairs an entry with its bm25 rank score. Lower scores
// mean better matches.
type SearchResult struct {
	Entry MemoryEntry
	Score float64
}

// ContextConfig bounds the assembled prompt context.
type ContextConfig struct {
	MaxTokens        int
	SystemPrompt     string
	MemoryMaxResults int
	MemoryMinScore   float64
}

// BuiltContext is the output of a context build: the token-bounded
// message sequence, the formatted memory block (kept outside the
// budget, callers decide whether to attach it), and the recomputed
// authoritative token count of Messages.
type BuiltContext struct {
	Messages    []Message
	MemoryBlock string
	TokenCount  int
}
