package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/sandevgo/membot/internal/core"
)

type HelpCommand struct {
	commands  []core.Command
	formatter *ResponseFormatter
}

// NewHelpCommand receives the commands registered ahead of it and
// adds its own entry when listing.
func NewHelpCommand(commands []core.Command) *HelpCommand {
	return &HelpCommand{
		commands:  commands,
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List available commands"
}

func (c *HelpCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	names := make([]string, 0, len(c.commands)+1)
	for _, cmd := range c.commands {
		names = append(names, fmt.Sprintf("/%s - %s", cmd.Name(), cmd.Description()))
	}
	names = append(names, fmt.Sprintf("/%s - %s", c.Name(), c.Description()))
	sort.Strings(names)

	return c.formatter.Combine(
		c.formatter.Info("Commands"),
		c.formatter.List(names),
	), nil
}
