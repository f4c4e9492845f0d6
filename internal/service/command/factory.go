package command

import (
	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/internal/service/memory"
	"github.com/sandevgo/membot/internal/service/session"
)

func NewCommands(
	memories *memory.Service,
	sessions *session.Manager,
	cfg core.ProviderConfig,
	state core.GlobalState,
) []core.Command {
	commands := []core.Command{
		NewRememberCommand(memories),
		NewSearchCommand(memories),
		NewForgetCommand(memories),
		NewMemoriesCommand(memories),
		NewStatsCommand(memories, sessions),
		NewResetCommand(sessions),
		NewModelCommand(cfg, state),
	}
	return append(commands, NewHelpCommand(commands))
}
