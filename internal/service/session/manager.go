// Package session owns chat sessions: creation on demand, message
// append, and ordered history snapshots for context building.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/pkg/log"
)

type Manager struct {
	sessions     core.SessionsRepository
	messages     core.MessagesRepository
	systemPrompt string
}

func NewManager(sessions core.SessionsRepository, messages core.MessagesRepository, systemPrompt string) *Manager {
	return &Manager{
		sessions:     sessions,
		messages:     messages,
		systemPrompt: systemPrompt,
	}
}

// GetOrCreate returns the session with the given id, creating it if
// needed; a blank id gets a generated one. New sessions are seeded
// with the configured system prompt as their first message so the
// prompt travels with the transcript.
func (m *Manager) GetOrCreate(ctx context.Context, id string) (core.Session, error) {
	if id == "" {
		id = uuid.NewString()
	}

	session, err := m.sessions.Get(ctx, id)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return core.Session{}, err
	}

	now := time.Now().UTC()
	session = core.Session{ID: id, CreatedAt: now, UpdatedAt: now}
	if err := m.sessions.Create(ctx, session); err != nil {
		return core.Session{}, err
	}

	if m.systemPrompt != "" {
		seed := core.Message{Role: core.RoleSystem, Content: m.systemPrompt}
		if err := m.messages.AddMessage(ctx, id, seed, nil); err != nil {
			return core.Session{}, err
		}
	}

	log.FromCtx(ctx).Info().Str("session_id", id).Msg("Session created")
	return session, nil
}

func (m *Manager) Append(ctx context.Context, sessionID string, msg core.Message, metadata map[string]string) error {
	return m.messages.AddMessage(ctx, sessionID, msg, metadata)
}

// Snapshot returns the full transcript in insertion order.
func (m *Manager) Snapshot(ctx context.Context, sessionID string) ([]core.Message, error) {
	return m.messages.GetMessages(ctx, sessionID)
}

// Recent returns the last limit messages in chronological order.
func (m *Manager) Recent(ctx context.Context, sessionID string, limit int) ([]core.Message, error) {
	return m.messages.GetRecentMessages(ctx, sessionID, limit)
}

func (m *Manager) MessageCount(ctx context.Context, sessionID string) (int64, error) {
	return m.messages.CountMessages(ctx, sessionID)
}

// Delete drops the session and its transcript.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.sessions.Delete(ctx, sessionID)
}
