package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/internal/service/memory"
)

type RememberCommand struct {
	memories  *memory.Service
	formatter *ResponseFormatter
}

func NewRememberCommand(memories *memory.Service) *RememberCommand {
	return &RememberCommand{
		memories:  memories,
		formatter: NewResponseFormatter(),
	}
}

func (c *RememberCommand) Name() string {
	return "remember"
}

func (c *RememberCommand) Description() string {
	return "Store a fact in long-term memory"
}

func (c *RememberCommand) Execute(ctx context.Context, _ string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Usage("/remember <fact>"),
			c.formatter.Examples([]string{
				"/remember My name is John",
				"/remember I prefer short answers",
			}),
		), nil
	}

	entry, created, err := c.memories.Remember(ctx, core.EntryDraft{
		Content:  strings.Join(args, " "),
		Kind:     core.KindUserFact,
		Metadata: map[string]string{"source": "command"},
	})
	if err != nil {
		return "", err
	}
	if !created {
		return c.formatter.Tip("I already know that one."), nil
	}

	return c.formatter.Success(fmt.Sprintf("Remembered #%d", entry.ID)), nil
}
