package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sandevgo/membot/internal/core"
)

func TestOpenAICompatibleChat(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello back"}}]}`))
	}))
	defer srv.Close()

	provider := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    srv.URL,
		APIKey:     "secret",
		Model:      "gpt-4",
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	})

	msg, err := provider.Chat(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if msg.Role != core.RoleAssistant || msg.Content != "hello back" {
		t.Errorf("unexpected message: %+v", msg)
	}
	if gotPath != "/v1/chat/completions" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("unexpected auth header: %s", gotAuth)
	}
	if gotPayload["model"] != "gpt-4" {
		t.Errorf("unexpected model in payload: %v", gotPayload["model"])
	}
}

func TestOpenAICompatibleChatHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	provider := NewOpenAICompatible(OpenAICompatibleConfig{BaseURL: srv.URL, Model: "gpt-4"})

	_, err := provider.Chat(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected http 429 error, got %v", err)
	}
}

func TestMockRecordsCalls(t *testing.T) {
	mock := NewMock("canned")
	ctx := context.Background()

	history := []core.Message{{Role: core.RoleUser, Content: "one"}}
	msg, err := mock.Chat(ctx, history)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if msg.Content != "canned" {
		t.Errorf("unexpected response: %q", msg.Content)
	}

	mock.SetResponse("other")
	if msg, _ := mock.Chat(ctx, nil); msg.Content != "other" {
		t.Errorf("expected updated response, got %q", msg.Content)
	}

	if mock.CallCount() != 2 {
		t.Errorf("expected 2 calls, got %d", mock.CallCount())
	}
	calls := mock.Calls()
	if len(calls[0]) != 1 || calls[0][0].Content != "one" {
		t.Errorf("unexpected recorded history: %+v", calls[0])
	}
}
