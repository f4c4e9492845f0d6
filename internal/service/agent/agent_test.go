package agent

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/internal/providers/llm"
)

type fakeSessions struct {
	transcripts map[string][]core.Message
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{transcripts: make(map[string][]core.Message)}
}

func (f *fakeSessions) GetOrCreate(_ context.Context, id string) (core.Session, error) {
	if id == "" {
		id = "generated"
	}
	if _, ok := f.transcripts[id]; !ok {
		f.transcripts[id] = []core.Message{{Role: core.RoleSystem, Content: "You are a helpful assistant."}}
	}
	return core.Session{ID: id}, nil
}

func (f *fakeSessions) Append(_ context.Context, sessionID string, msg core.Message, _ map[string]string) error {
	f.transcripts[sessionID] = append(f.transcripts[sessionID], msg)
	return nil
}

func (f *fakeSessions) Snapshot(_ context.Context, sessionID string) ([]core.Message, error) {
	return f.transcripts[sessionID], nil
}

type fakeBuilder struct {
	lastQuery string
	block     string
	err       error
}

func (f *fakeBuilder) Build(_ context.Context, _ core.ContextConfig, history []core.Message, query string) (core.BuiltContext, error) {
	if f.err != nil {
		return core.BuiltContext{}, f.err
	}
	f.lastQuery = query
	return core.BuiltContext{Messages: history, MemoryBlock: f.block, TokenCount: len(history)}, nil
}

type fakeExtractor struct {
	turns []string
	err   error
}

func (f *fakeExtractor) ProcessTurn(_ context.Context, text string) (core.MemoryEntry, bool, error) {
	f.turns = append(f.turns, text)
	if f.err != nil {
		return core.MemoryEntry{}, false, f.err
	}
	return core.MemoryEntry{ID: 1, Content: text}, true, nil
}

type fakeMemCfg struct{}

func (fakeMemCfg) GetContextConfig() core.ContextConfig {
	return core.ContextConfig{MaxTokens: 8000, MemoryMaxResults: 3}
}
func (fakeMemCfg) GetDuplicateThreshold() float64 { return -1.0 }
func (fakeMemCfg) GetLocale() string              { return "en" }

func TestRunPersistsTurnAndExtracts(t *testing.T) {
	sessions := newFakeSessions()
	builder := &fakeBuilder{}
	extractor := &fakeExtractor{}
	mock := llm.NewMock("the reply")
	a := NewAgent(mock, sessions, builder, extractor, fakeMemCfg{})

	var updates []core.Message
	reply, err := a.Run(context.Background(), "s1", "I like Python", func(msg core.Message) {
		updates = append(updates, msg)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reply != "the reply" {
		t.Errorf("unexpected reply: %q", reply)
	}

	want := []core.Message{
		{Role: core.RoleSystem, Content: "You are a helpful assistant."},
		{Role: core.RoleUser, Content: "I like Python"},
		{Role: core.RoleAssistant, Content: "the reply"},
	}
	if !reflect.DeepEqual(sessions.transcripts["s1"], want) {
		t.Errorf("unexpected transcript:\ngot  %+v\nwant %+v", sessions.transcripts["s1"], want)
	}

	if builder.lastQuery != "I like Python" {
		t.Errorf("expected user input as search query, got %q", builder.lastQuery)
	}
	if len(extractor.turns) != 1 || extractor.turns[0] != "I like Python" {
		t.Errorf("expected extraction of the user turn, got %v", extractor.turns)
	}
	if len(updates) != 1 || updates[0].Content != "the reply" {
		t.Errorf("expected one update callback, got %v", updates)
	}
}

func TestRunSplicesMemoryBlockAfterSystemRun(t *testing.T) {
	sessions := newFakeSessions()
	builder := &fakeBuilder{block: "### Relevant Memories\n- User likes Python"}
	mock := llm.NewMock("")
	a := NewAgent(mock, sessions, builder, &fakeExtractor{}, fakeMemCfg{})

	if _, err := a.Run(context.Background(), "s1", "what do I like?", nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one chat call, got %d", len(calls))
	}
	sent := calls[0]

	if len(sent) != 3 {
		t.Fatalf("expected 3 messages, got %d: %+v", len(sent), sent)
	}
	if sent[0].Role != core.RoleSystem || sent[0].Content != "You are a helpful assistant." {
		t.Errorf("unexpected first message: %+v", sent[0])
	}
	if sent[1].Role != core.RoleSystem || sent[1].Content != builder.block {
		t.Errorf("expected memory block second, got %+v", sent[1])
	}
	if sent[2].Role != core.RoleUser {
		t.Errorf("expected user message last, got %+v", sent[2])
	}
}

func TestRunSurvivesExtractionFailure(t *testing.T) {
	sessions := newFakeSessions()
	extractor := &fakeExtractor{err: &core.StorageError{Op: "insert memory", Err: errors.New("locked")}}
	a := NewAgent(llm.NewMock("still here"), sessions, &fakeBuilder{}, extractor, fakeMemCfg{})

	reply, err := a.Run(context.Background(), "s1", "I like Go", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reply != "still here" {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestRunPropagatesBudgetError(t *testing.T) {
	builder := &fakeBuilder{err: &core.BudgetExhaustedError{Required: 100, Budget: 10}}
	a := NewAgent(llm.NewMock(""), newFakeSessions(), builder, &fakeExtractor{}, fakeMemCfg{})

	_, err := a.Run(context.Background(), "s1", "hello", nil)

	var bErr *core.BudgetExhaustedError
	if !errors.As(err, &bErr) {
		t.Fatalf("expected BudgetExhaustedError, got %v", err)
	}
}
