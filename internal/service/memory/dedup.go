package memory

import (
	"context"

	"github.com/sandevgo/membot/internal/core"
)

const (
	// DefaultDuplicateThreshold is the rank score separating "already
	// recorded" from "novel" when a probe finds a match.
	DefaultDuplicateThreshold = -1.0

	dedupProbeLen   = 50
	dedupProbeLimit = 1
)

// Deduplicator decides whether candidate content duplicates an
// existing memory. It is not a separate index: it reuses ranked
// search with a fixed probe shape, trading precision for zero extra
// state. False positives on facts sharing an opening clause and
// false negatives on rephrased facts are accepted.
type Deduplicator struct {
	repo      core.MemoriesRepository
	threshold float64
}

func NewDeduplicator(repo core.MemoriesRepository, threshold float64) *Deduplicator {
	return &Deduplicator{repo: repo, threshold: threshold}
}

// IsDuplicate probes the index with the opening clause of content.
// Near-duplicate facts share their opening, so a bounded prefix keeps
// sanitizer and ranking cost flat regardless of content length.
func (d *Deduplicator) IsDuplicate(ctx context.Context, content string) (bool, error) {
	probe := content
	if runes := []rune(probe); len(runes) > dedupProbeLen {
		probe = string(runes[:dedupProbeLen])
	}

	results, err := d.repo.Search(ctx, core.SearchQuery{Query: probe, Limit: dedupProbeLimit})
	if err != nil {
		return false, err
	}
	if len(results) == 0 {
		return false, nil
	}

	// Scores above the threshold mark lexical near-duplicates; scores
	// at or below it mark distinctive content that merely shares
	// words with an existing entry.
	return !core.ScoreWithin(results[0].Score, d.threshold), nil
}
