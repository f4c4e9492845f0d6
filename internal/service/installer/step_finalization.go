package installer

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep computes derived values and final env var formatting
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	channel := state.EnvVars["MEMBOT_CHAT_CHANNEL"]

	// A Telegram selection without a token would fail validation on
	// boot, so the transport is only enabled when both are present.
	if telegramSelected(state) && state.EnvVars["MEMBOT_TELEGRAM_TOKEN"] != "" {
		state.EnvVars["MEMBOT_ENABLE_TELEGRAM"] = "true"
	} else {
		state.EnvVars["MEMBOT_ENABLE_TELEGRAM"] = "false"
	}

	if strings.Contains(channel, "CLI") || channel == "" {
		state.EnvVars["MEMBOT_ENABLE_CLI"] = "true"
	} else {
		state.EnvVars["MEMBOT_ENABLE_CLI"] = "false"
	}

	// Set defaults
	if state.EnvVars["MEMBOT_DEBUG"] == "" {
		state.EnvVars["MEMBOT_DEBUG"] = "0"
	}

	// Only used as intermediate state
	delete(state.EnvVars, "MEMBOT_CHAT_CHANNEL")

	// Signal completion
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
