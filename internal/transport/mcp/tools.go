package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mcpproto "github.com/mark3labs/mcp-go/mcp"

	"github.com/sandevgo/membot/internal/core"
)

func rememberTool() mcpproto.Tool {
	return mcpproto.NewTool("memory_remember",
		mcpproto.WithDescription("Store a durable fact in long-term memory. Near-duplicates of existing entries are suppressed."),
		mcpproto.WithString("content",
			mcpproto.Required(),
			mcpproto.Description("The fact to store, as one self-contained sentence."),
		),
		mcpproto.WithString("kind",
			mcpproto.Description("Entry classification: user_fact or knowledge. Defaults to user_fact."),
		),
	)
}

func (s *Server) handleRemember(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	kind := core.Kind(req.GetString("kind", string(core.KindUserFact)))
	if !core.ValidKind(kind) {
		return mcpproto.NewToolResultError(fmt.Sprintf("unknown kind %q", kind)), nil
	}

	entry, created, err := s.memories.Remember(ctx, core.EntryDraft{
		Content:  content,
		Kind:     kind,
		Metadata: map[string]string{"source": "mcp"},
	})
	if err != nil {
		return mcpproto.NewToolResultError(fmt.Sprintf("remember failed: %v", err)), nil
	}
	if !created {
		return mcpproto.NewToolResultText("Already known, kept the existing entry."), nil
	}

	return mcpproto.NewToolResultText(fmt.Sprintf("Remembered #%d.", entry.ID)), nil
}

func searchTool() mcpproto.Tool {
	return mcpproto.NewTool("memory_search",
		mcpproto.WithDescription("Full-text search over stored memories, best matches first."),
		mcpproto.WithString("query",
			mcpproto.Required(),
			mcpproto.Description("Free-text search terms."),
		),
		mcpproto.WithNumber("limit",
			mcpproto.Description("Maximum number of results. Defaults to 5."),
		),
	)
}

func (s *Server) handleSearch(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	results, err := s.memories.Search(ctx, core.SearchQuery{
		Query: query,
		Limit: req.GetInt("limit", 5),
	})
	if err != nil {
		return mcpproto.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(results) == 0 {
		return mcpproto.NewToolResultText("No matching memories."), nil
	}

	var sb strings.Builder
	for _, res := range results {
		fmt.Fprintf(&sb, "#%d [%s] %s\n", res.Entry.ID, res.Entry.Kind, res.Entry.Content)
	}

	return mcpproto.NewToolResultText(strings.TrimRight(sb.String(), "\n")), nil
}

func forgetTool() mcpproto.Tool {
	return mcpproto.NewTool("memory_forget",
		mcpproto.WithDescription("Delete a memory entry by id."),
		mcpproto.WithNumber("id",
			mcpproto.Required(),
			mcpproto.Description("Id of the entry to delete, as shown by memory_search or memory_list."),
		),
	)
}

func (s *Server) handleForget(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	if err := s.memories.Forget(ctx, int64(id)); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return mcpproto.NewToolResultError(fmt.Sprintf("no memory #%d", id)), nil
		}
		return mcpproto.NewToolResultError(fmt.Sprintf("forget failed: %v", err)), nil
	}

	return mcpproto.NewToolResultText(fmt.Sprintf("Forgot #%d.", id)), nil
}

func listTool() mcpproto.Tool {
	return mcpproto.NewTool("memory_list",
		mcpproto.WithDescription("List stored memories, newest first."),
		mcpproto.WithNumber("limit",
			mcpproto.Description("Maximum number of entries. Defaults to 20."),
		),
	)
}

func (s *Server) handleList(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	entries, err := s.memories.List(ctx, req.GetInt("limit", 20))
	if err != nil {
		return mcpproto.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcpproto.NewToolResultText("Memory is empty."), nil
	}

	var sb strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&sb, "#%d [%s] %s\n", entry.ID, entry.Kind, entry.Content)
	}

	return mcpproto.NewToolResultText(strings.TrimRight(sb.String(), "\n")), nil
}

func statsTool() mcpproto.Tool {
	return mcpproto.NewTool("memory_stats",
		mcpproto.WithDescription("Report how many memories are stored."),
	)
}

func (s *Server) handleStats(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	count, err := s.memories.Count(ctx)
	if err != nil {
		return mcpproto.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}

	return mcpproto.NewToolResultText(fmt.Sprintf("Memories stored: %d", count)), nil
}
