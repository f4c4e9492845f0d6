// Package memory implements long-term memory for the agent: a
// deduplicated store of short natural-language facts, ranked
// retrieval over them, and assembly of a token-bounded prompt context
// from system messages, relevant memories and recent dialogue.
package memory

import (
	"context"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/pkg/log"
)

type Service struct {
	repo  core.MemoriesRepository
	dedup *Deduplicator
}

func NewService(repo core.MemoriesRepository, duplicateThreshold float64) *Service {
	return &Service{
		repo:  repo,
		dedup: NewDeduplicator(repo, duplicateThreshold),
	}
}

// Remember stores a fact unless a near-duplicate is already recorded.
// The returned bool reports whether a new entry was created; a
// suppressed duplicate is not an error.
func (s *Service) Remember(ctx context.Context, draft core.EntryDraft) (core.MemoryEntry, bool, error) {
	duplicate, err := s.dedup.IsDuplicate(ctx, draft.Content)
	if err != nil {
		return core.MemoryEntry{}, false, err
	}
	if duplicate {
		log.FromCtx(ctx).Debug().
			Int("content_len", len(draft.Content)).
			Msg("Duplicate memory suppressed")
		return core.MemoryEntry{}, false, nil
	}

	entry, err := s.repo.Insert(ctx, draft)
	if err != nil {
		return core.MemoryEntry{}, false, err
	}
	return entry, true, nil
}

func (s *Service) Search(ctx context.Context, query core.SearchQuery) ([]core.SearchResult, error) {
	return s.repo.Search(ctx, query)
}

func (s *Service) Forget(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit int) ([]core.MemoryEntry, error) {
	return s.repo.List(ctx, limit)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
