package llm

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sandevgo/membot/internal/core"
)

// DynamicProvider wraps the configured provider behind an atomic
// pointer so the model can be swapped at runtime without restarting
// transports.
type DynamicProvider struct {
	config  core.ProviderConfig
	current atomic.Value
	mu      sync.Mutex
}

func NewDynamicProvider(ctx context.Context, config core.ProviderConfig) (*DynamicProvider, error) {
	d := &DynamicProvider{
		config: config,
	}

	provider, err := NewProvider(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial provider: %w", err)
	}

	d.current.Store(&provider)
	return d, nil
}

func (d *DynamicProvider) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	provider := *d.current.Load().(*core.AIProvider)
	return provider.Chat(ctx, history)
}

func (d *DynamicProvider) Models(ctx context.Context) ([]core.Model, error) {
	provider := *d.current.Load().(*core.AIProvider)
	if lister, ok := provider.(core.ModelLister); ok {
		return lister.Models(ctx)
	}
	return nil, nil
}

func (d *DynamicProvider) GetModel() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.config.GetModel()
}

// SetModel persists the new model, builds a fresh provider for it and
// swaps it in atomically. In-flight Chat calls finish on the old one.
func (d *DynamicProvider) SetModel(ctx context.Context, model string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.config.SetModel(model); err != nil {
		return err
	}

	provider, err := NewProvider(ctx, d.config)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	d.current.Store(&provider)
	return nil
}
