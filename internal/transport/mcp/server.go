// Package mcp exposes the memory store as an MCP server over stdio,
// so external agents can read and write the same memories the chat
// transports use.
package mcp

import (
	"context"
	"errors"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/internal/service/memory"
	"github.com/sandevgo/membot/pkg/log"
)

type Server struct {
	memories *memory.Service
	mcp      *server.MCPServer
}

func NewServer(memories *memory.Service) *Server {
	s := &Server{memories: memories}

	srv := server.NewMCPServer(
		core.MemBotName,
		core.MemBotVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	srv.AddTool(rememberTool(), s.handleRemember)
	srv.AddTool(searchTool(), s.handleSearch)
	srv.AddTool(forgetTool(), s.handleForget)
	srv.AddTool(listTool(), s.handleList)
	srv.AddTool(statsTool(), s.handleStats)

	s.mcp = srv
	return s
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting mcp server on stdio")

	// Stdout carries the protocol; all logging goes to stderr.
	err := server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

const serverInstructions = `You have access to MemBot, a persistent long-term memory store.

Use memory_search before answering questions about the user or about
previously discussed topics. Use memory_remember to store durable facts
(preferences, biography, decisions) as single self-contained sentences.
Do not store transient conversation details.`
