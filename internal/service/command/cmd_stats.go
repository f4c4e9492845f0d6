package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/membot/internal/service/memory"
	"github.com/sandevgo/membot/internal/service/session"
)

type StatsCommand struct {
	memories  *memory.Service
	sessions  *session.Manager
	formatter *ResponseFormatter
}

func NewStatsCommand(memories *memory.Service, sessions *session.Manager) *StatsCommand {
	return &StatsCommand{
		memories:  memories,
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatsCommand) Name() string {
	return "stats"
}

func (c *StatsCommand) Description() string {
	return "Show memory and session counters"
}

func (c *StatsCommand) Execute(ctx context.Context, sessionID string, _ []string) (string, error) {
	memCount, err := c.memories.Count(ctx)
	if err != nil {
		return "", err
	}

	msgCount, err := c.sessions.MessageCount(ctx, sessionID)
	if err != nil {
		return "", err
	}

	return c.formatter.Combine(
		c.formatter.Info("Stats"),
		c.formatter.Label("Memories", fmt.Sprintf("%d", memCount)),
		c.formatter.Label("Session messages", fmt.Sprintf("%d", msgCount)),
	), nil
}
