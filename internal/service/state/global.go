// Package state holds mutable runtime state shared across transports.
// It sits between the command layer and the provider stack so
// commands can flip the active model without importing either side.
package state

import (
	"context"

	"github.com/sandevgo/membot/pkg/log"
)

type provider interface {
	SetModel(ctx context.Context, model string) error
}

type GlobalState struct {
	provider provider
}

func NewGlobalState(provider provider) *GlobalState {
	return &GlobalState{
		provider: provider,
	}
}

// ChangeModel switches the active provider/model pair. The change
// applies to every session at once.
func (s *GlobalState) ChangeModel(ctx context.Context, model string) error {
	if err := s.provider.SetModel(ctx, model); err != nil {
		return err
	}

	log.FromCtx(ctx).Info().Str("model", model).Msg("Model changed")
	return nil
}
