package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sandevgo/membot/internal/service/memory"
)

type MemoriesCommand struct {
	memories  *memory.Service
	formatter *ResponseFormatter
}

func NewMemoriesCommand(memories *memory.Service) *MemoriesCommand {
	return &MemoriesCommand{
		memories:  memories,
		formatter: NewResponseFormatter(),
	}
}

func (c *MemoriesCommand) Name() string {
	return "memories"
}

func (c *MemoriesCommand) Description() string {
	return "List stored memories, newest first"
}

func (c *MemoriesCommand) Execute(ctx context.Context, _ string, args []string) (string, error) {
	limit := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("limit must be a number, got %q", args[0])
		}
		limit = n
	}

	entries, err := c.memories.List(ctx, limit)
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return c.formatter.Info("Memory is empty."), nil
	}

	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		items = append(items, fmt.Sprintf("#%d [%s] %s", entry.ID, entry.Kind, entry.Content))
	}

	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("%d memories", len(entries))),
		c.formatter.List(items),
	), nil
}
