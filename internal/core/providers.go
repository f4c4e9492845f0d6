package core

import "context"

type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
}

// ModelLister is implemented by providers that can enumerate the
// models their backend serves.
type ModelLister interface {
	Models(ctx context.Context) ([]Model, error)
}

type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
