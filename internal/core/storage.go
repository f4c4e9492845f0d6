package core

import (
	"context"
	"time"
)

type MemoriesRepository interface {
	Insert(ctx context.Context, draft EntryDraft) (MemoryEntry, error)
	Search(ctx context.Context, query SearchQuery) ([]SearchResult, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit int) ([]MemoryEntry, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}

type SessionsRepository interface {
	Create(ctx context.Context, session Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// MessagesRepository persists ordered session messages. AddMessage
// also bumps the owning session's updated_at, transactionally.
type MessagesRepository interface {
	AddMessage(ctx context.Context, sessionID string, msg Message, metadata map[string]string) error
	GetMessages(ctx context.Context, sessionID string) ([]Message, error)
	GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]Message, error)
	CountMessages(ctx context.Context, sessionID string) (int64, error)
}

type Session struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
