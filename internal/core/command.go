package core

import "context"

// CmdRouter dispatches slash commands typed into any chat transport.
// Execute reports handled=false when the input is not a command, in
// which case the transport forwards it to the agent instead.
type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (string, bool)
	ListCommands() []Command
}

// Command is a single slash command such as /remember or /search.
// Execute returns Markdown for the transport to render.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}
