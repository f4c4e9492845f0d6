package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/internal/service/memory"
)

type ForgetCommand struct {
	memories  *memory.Service
	formatter *ResponseFormatter
}

func NewForgetCommand(memories *memory.Service) *ForgetCommand {
	return &ForgetCommand{
		memories:  memories,
		formatter: NewResponseFormatter(),
	}
}

func (c *ForgetCommand) Name() string {
	return "forget"
}

func (c *ForgetCommand) Description() string {
	return "Delete a memory by id, or all of them"
}

func (c *ForgetCommand) Execute(ctx context.Context, _ string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Usage("/forget <id>|all"),
			c.formatter.Tip("Use /memories to see ids."),
		), nil
	}

	if args[0] == "all" {
		if err := c.memories.Clear(ctx); err != nil {
			return "", err
		}
		return c.formatter.Success("Forgot everything"), nil
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return "", fmt.Errorf("memory id must be a number, got %q", args[0])
	}

	if err := c.memories.Forget(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", fmt.Errorf("no memory #%d", id)
		}
		return "", err
	}

	return c.formatter.Success(fmt.Sprintf("Forgot #%d", id)), nil
}
