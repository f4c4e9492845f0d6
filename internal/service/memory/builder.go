package memory

import (
	"context"
	"strings"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/pkg/tokens"
)

// maxProtectedSystem caps how many system messages are exempt from
// truncation.
const maxProtectedSystem = 2

// TokenCounter is the slice of pkg/tokens the builder needs.
type TokenCounter interface {
	CountMessage(role, content string) int
}

// Searcher is the slice of the memory service the builder needs.
type Searcher interface {
	Search(ctx context.Context, query core.SearchQuery) ([]core.SearchResult, error)
}

// Builder assembles the prompt context for one agent turn: the
// protected system prefix, as much recent dialogue as the token
// budget allows, and a block of relevant memories.
//
// The memory block is returned separately and is not counted against
// the budget. It is pre-bounded by MemoryMaxResults rather than by
// tokens; if that overflows the model's window the caller has to
// deal with it.
type Builder struct {
	counter  TokenCounter
	memories Searcher
}

func NewBuilder(counter TokenCounter, memories Searcher) *Builder {
	return &Builder{counter: counter, memories: memories}
}

// Build assembles the context for a session snapshot and query. It
// never mutates history, holds no state between calls, and the
// returned token count is recomputed from the final message set.
//
// Truncation is strict greedy-recency: walk the dialogue newest to
// oldest, keep every message that still fits, stop at the first one
// that does not. No skipping ahead to pack smaller messages.
func (b *Builder) Build(ctx context.Context, cfg core.ContextConfig, history []core.Message, query string) (core.BuiltContext, error) {
	var prefix, conversation []core.Message
	for _, msg := range history {
		if msg.Role == core.RoleSystem && len(prefix) < maxProtectedSystem {
			prefix = append(prefix, msg)
			continue
		}
		conversation = append(conversation, msg)
	}

	prefixCost := tokens.ReplyPriming
	for _, msg := range prefix {
		prefixCost += b.counter.CountMessage(msg.Role, msg.Content)
	}
	if prefixCost > cfg.MaxTokens {
		return core.BuiltContext{}, &core.BudgetExhaustedError{Required: prefixCost, Budget: cfg.MaxTokens}
	}
	available := cfg.MaxTokens - prefixCost

	kept, running := 0, 0
	for i := len(conversation) - 1; i >= 0; i-- {
		cost := b.counter.CountMessage(conversation[i].Role, conversation[i].Content)
		if running+cost > available {
			break
		}
		running += cost
		kept++
	}

	messages := make([]core.Message, 0, len(prefix)+kept)
	messages = append(messages, prefix...)
	messages = append(messages, conversation[len(conversation)-kept:]...)

	total := tokens.ReplyPriming
	for _, msg := range messages {
		total += b.counter.CountMessage(msg.Role, msg.Content)
	}

	block, err := b.memoryBlock(ctx, cfg, query)
	if err != nil {
		return core.BuiltContext{}, err
	}

	return core.BuiltContext{
		Messages:    messages,
		MemoryBlock: block,
		TokenCount:  total,
	}, nil
}

func (b *Builder) memoryBlock(ctx context.Context, cfg core.ContextConfig, query string) (string, error) {
	if b.memories == nil || query == "" || cfg.MemoryMaxResults <= 0 {
		return "", nil
	}

	minScore := cfg.MemoryMinScore
	results, err := b.memories.Search(ctx, core.SearchQuery{
		Query:    query,
		Limit:    cfg.MemoryMaxResults,
		MinScore: &minScore,
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("### Relevant Memories\n")
	for _, res := range results {
		sb.WriteString("- ")
		sb.WriteString(res.Entry.Content)
		sb.WriteByte('\n')
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
