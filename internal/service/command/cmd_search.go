package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/internal/service/memory"
)

type SearchCommand struct {
	memories  *memory.Service
	formatter *ResponseFormatter
}

func NewSearchCommand(memories *memory.Service) *SearchCommand {
	return &SearchCommand{
		memories:  memories,
		formatter: NewResponseFormatter(),
	}
}

func (c *SearchCommand) Name() string {
	return "search"
}

func (c *SearchCommand) Description() string {
	return "Search long-term memory"
}

func (c *SearchCommand) Execute(ctx context.Context, _ string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Usage("/search <query>"), nil
	}

	results, err := c.memories.Search(ctx, core.SearchQuery{
		Query: strings.Join(args, " "),
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return c.formatter.Info("No matches"), nil
	}

	items := make([]string, 0, len(results))
	for _, res := range results {
		items = append(items, fmt.Sprintf("#%d [%s] %s (%.2f)", res.Entry.ID, res.Entry.Kind, res.Entry.Content, res.Score))
	}

	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("%d matches", len(results))),
		c.formatter.List(items),
	), nil
}
