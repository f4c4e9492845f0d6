package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandevgo/membot/internal/core"
)

func TestSessionsRoundTrip(t *testing.T) {
	repo := NewSessionsRepo(newTestDB(t))
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	session := core.Session{
		ID:        "cli-local",
		CreatedAt: now,
		UpdatedAt: now,
		Metadata:  map[string]string{"transport": "cli"},
	}

	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Get(ctx, "cli-local")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != session.ID {
		t.Errorf("unexpected ID: %q", got.ID)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("unexpected CreatedAt: %v", got.CreatedAt)
	}
	if got.Metadata["transport"] != "cli" {
		t.Errorf("unexpected metadata: %v", got.Metadata)
	}
}

func TestSessionsGetMissing(t *testing.T) {
	repo := NewSessionsRepo(newTestDB(t))

	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionsRejectEmptyID(t *testing.T) {
	repo := NewSessionsRepo(newTestDB(t))

	err := repo.Create(context.Background(), core.Session{})
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestMessagesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionsRepo(db)
	messages := NewMessagesRepo(db)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := sessions.Create(ctx, core.Session{ID: "s1", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	turns := []core.Message{
		{Role: core.RoleSystem, Content: "You are a helpful assistant."},
		{Role: core.RoleUser, Content: "Hello"},
		{Role: core.RoleAssistant, Content: "Hi there"},
		{Role: core.RoleUser, Content: "How are you?"},
	}
	for _, msg := range turns {
		if err := messages.AddMessage(ctx, "s1", msg, nil); err != nil {
			t.Fatalf("AddMessage: %v", err)
		}
	}

	t.Run("full transcript in order", func(t *testing.T) {
		got, err := messages.GetMessages(ctx, "s1")
		if err != nil {
			t.Fatalf("GetMessages: %v", err)
		}
		if len(got) != len(turns) {
			t.Fatalf("expected %d messages, got %d", len(turns), len(got))
		}
		for i := range turns {
			if got[i] != turns[i] {
				t.Errorf("message %d: got %+v, want %+v", i, got[i], turns[i])
			}
		}
	})

	t.Run("recent window is chronological", func(t *testing.T) {
		got, err := messages.GetRecentMessages(ctx, "s1", 2)
		if err != nil {
			t.Fatalf("GetRecentMessages: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(got))
		}
		if got[0].Content != "Hi there" || got[1].Content != "How are you?" {
			t.Errorf("expected last two turns oldest first, got %+v", got)
		}
	})

	t.Run("count", func(t *testing.T) {
		count, err := messages.CountMessages(ctx, "s1")
		if err != nil {
			t.Fatalf("CountMessages: %v", err)
		}
		if count != int64(len(turns)) {
			t.Errorf("expected %d, got %d", len(turns), count)
		}
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		err := messages.AddMessage(ctx, "s1", core.Message{Role: "narrator", Content: "..."}, nil)
		var vErr *core.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestSessionDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionsRepo(db)
	messages := NewMessagesRepo(db)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := sessions.Create(ctx, core.Session{ID: "gone", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := messages.AddMessage(ctx, "gone", core.Message{Role: core.RoleUser, Content: "bye"}, nil); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	if err := sessions.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	count, err := messages.CountMessages(ctx, "gone")
	if err != nil {
		t.Fatalf("CountMessages: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cascade to remove messages, got %d", count)
	}

	if err := sessions.Delete(ctx, "gone"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
