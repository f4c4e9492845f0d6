package llm

import (
	"context"
	"sync"

	"github.com/sandevgo/membot/internal/core"
)

const defaultMockResponse = "Mock response"

// Mock returns a fixed response and records every call. It backs
// tests and offline development; no network is involved.
type Mock struct {
	mu       sync.Mutex
	response string
	calls    [][]core.Message
}

func NewMock(response string) *Mock {
	if response == "" {
		response = defaultMockResponse
	}
	return &Mock{response: response}
}

func (m *Mock) Chat(_ context.Context, history []core.Message) (core.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]core.Message, len(history))
	copy(snapshot, history)
	m.calls = append(m.calls, snapshot)

	return core.Message{Role: core.RoleAssistant, Content: m.response}, nil
}

func (m *Mock) Models(_ context.Context) ([]core.Model, error) {
	return []core.Model{{ID: "mock", Name: "mock"}}, nil
}

func (m *Mock) SetResponse(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = response
}

// Calls returns the histories passed to Chat, in order.
func (m *Mock) Calls() [][]core.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][]core.Message, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
