// Package agent orchestrates one conversational turn: persist the
// user message, assemble the token-bounded context, call the model,
// persist the reply and feed the turn to the memory extractor.
package agent

import (
	"context"
	"fmt"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/pkg/log"
)

type SessionManager interface {
	GetOrCreate(ctx context.Context, id string) (core.Session, error)
	Append(ctx context.Context, sessionID string, msg core.Message, metadata map[string]string) error
	Snapshot(ctx context.Context, sessionID string) ([]core.Message, error)
}

type ContextBuilder interface {
	Build(ctx context.Context, cfg core.ContextConfig, history []core.Message, query string) (core.BuiltContext, error)
}

type Extractor interface {
	ProcessTurn(ctx context.Context, text string) (core.MemoryEntry, bool, error)
}

type Agent struct {
	ai        core.AIProvider
	sessions  SessionManager
	builder   ContextBuilder
	extractor Extractor
	memCfg    core.MemoryConfig
}

func NewAgent(
	ai core.AIProvider,
	sessions SessionManager,
	builder ContextBuilder,
	extractor Extractor,
	memCfg core.MemoryConfig,
) *Agent {
	return &Agent{
		ai:        ai,
		sessions:  sessions,
		builder:   builder,
		extractor: extractor,
		memCfg:    memCfg,
	}
}

// Run processes one user turn and returns the assistant's reply.
// onUpdate, when set, receives the reply as soon as the model
// produces it, before memory extraction runs.
func (a *Agent) Run(ctx context.Context, sessionID string, input string, onUpdate func(core.Message)) (string, error) {
	logger := log.FromCtx(ctx)

	session, err := a.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to open session: %w", err)
	}

	userMsg := core.Message{Role: core.RoleUser, Content: input}
	if err := a.sessions.Append(ctx, session.ID, userMsg, nil); err != nil {
		return "", fmt.Errorf("failed to save user message: %w", err)
	}

	history, err := a.sessions.Snapshot(ctx, session.ID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch history: %w", err)
	}

	built, err := a.builder.Build(ctx, a.memCfg.GetContextConfig(), history, input)
	if err != nil {
		return "", fmt.Errorf("failed to build context: %w", err)
	}

	responseMsg, err := a.ai.Chat(ctx, spliceMemoryBlock(built))
	if err != nil {
		return "", fmt.Errorf("ai chat error: %w", err)
	}

	if err := a.sessions.Append(ctx, session.ID, responseMsg, nil); err != nil {
		logger.Error().Err(err).Msg("failed to save assistant message")
	}

	if onUpdate != nil {
		onUpdate(responseMsg)
	}

	// Extraction is best effort; a storage hiccup here must not eat
	// the reply the user is already reading.
	if a.extractor != nil {
		if _, _, err := a.extractor.ProcessTurn(ctx, input); err != nil {
			logger.Error().Err(err).Msg("memory extraction failed")
		}
	}

	return responseMsg.Content, nil
}

// spliceMemoryBlock inserts the retrieved-memories block as a system
// message right after the protected system prefix, so it reads as
// instructions rather than dialogue.
func spliceMemoryBlock(built core.BuiltContext) []core.Message {
	if built.MemoryBlock == "" {
		return built.Messages
	}

	insert := 0
	for insert < len(built.Messages) && built.Messages[insert].Role == core.RoleSystem {
		insert++
	}

	messages := make([]core.Message, 0, len(built.Messages)+1)
	messages = append(messages, built.Messages[:insert]...)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: built.MemoryBlock})
	messages = append(messages, built.Messages[insert:]...)
	return messages
}
