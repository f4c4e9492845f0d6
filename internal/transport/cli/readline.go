// Package cli runs an interactive chat loop on the local terminal.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sandevgo/membot/internal/config"
	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/internal/service/agent"
	"github.com/sandevgo/membot/internal/service/session"
	"github.com/sandevgo/membot/pkg/log"
)

const (
	defaultSessionID = "cli-local"

	// replayLimit bounds how many stored turns are echoed on startup.
	replayLimit = 6
)

type ReadLine struct {
	cfg      *config.AppConfig
	agent    *agent.Agent
	router   core.CmdRouter
	sessions *session.Manager
	rl       *readline.Instance
}

func NewReadLine(agent *agent.Agent, router core.CmdRouter, sessions *session.Manager, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.GetRuntimePath(), "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:      cfg,
		agent:    agent,
		router:   router,
		sessions: sessions,
		rl:       rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("chat started. Type 'exit' to quit, /help for commands.")

	r.replayTail(ctx)

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if result, handled := r.router.Execute(ctx, defaultSessionID, line); handled {
			fmt.Fprintf(r.rl.Stdout(), "%s\n", result)
			continue
		}

		_, err = r.agent.Run(ctx, defaultSessionID, line, func(msg core.Message) {
			if msg.Content != "" {
				fmt.Fprintf(r.rl.Stdout(), "%s\n", msg.Content)
			}
		})

		if err != nil {
			logger.Error().Err(err).Msg("agent run failed")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
		}
	}
}

// replayTail echoes the last few stored turns so a restarted REPL
// picks up where the conversation left off. The seeded system prompt
// is not dialogue and stays hidden.
func (r *ReadLine) replayTail(ctx context.Context) {
	recent, err := r.sessions.Recent(ctx, defaultSessionID, replayLimit)
	if err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("transcript replay skipped")
		return
	}

	for _, msg := range recent {
		switch msg.Role {
		case core.RoleUser:
			fmt.Fprintf(r.rl.Stdout(), ">>> %s\n", msg.Content)
		case core.RoleAssistant:
			fmt.Fprintf(r.rl.Stdout(), "%s\n", msg.Content)
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
