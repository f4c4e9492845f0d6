package command

import (
	"context"
	"errors"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/internal/service/session"
)

type ResetCommand struct {
	sessions  *session.Manager
	formatter *ResponseFormatter
}

func NewResetCommand(sessions *session.Manager) *ResetCommand {
	return &ResetCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Clear the current conversation"
}

func (c *ResetCommand) Execute(ctx context.Context, sessionID string, _ []string) (string, error) {
	// A session that was never persisted is already reset.
	if err := c.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, core.ErrNotFound) {
		return "", err
	}

	return c.formatter.Success("Session reset. The next message starts fresh."), nil
}
