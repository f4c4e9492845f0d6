package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/pkg/log"
)

type MemoryConfig struct {
	// Context assembly
	MaxTokens        int     `env:"MEMBOT_MAX_TOKENS" envDefault:"8000"`
	SystemPrompt     string  `env:"MEMBOT_SYSTEM_PROMPT" envDefault:"You are a helpful assistant."`
	MemoryMaxResults int     `env:"MEMBOT_MEMORY_MAX_RESULTS" envDefault:"3"`
	MemoryMinScore   float64 `env:"MEMBOT_MEMORY_MIN_SCORE" envDefault:"0.0"`

	// Memory extraction and dedup
	DuplicateThreshold float64 `env:"MEMBOT_DUPLICATE_THRESHOLD" envDefault:"-1.0"`
	Locale             string  `env:"MEMBOT_LOCALE" envDefault:"en"`
}

func NewMemoryConfig(ctx context.Context) *MemoryConfig {
	c := &MemoryConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Memory config")
	}
	return c
}

func (c *MemoryConfig) GetContextConfig() core.ContextConfig {
	return core.ContextConfig{
		MaxTokens:        c.MaxTokens,
		SystemPrompt:     c.SystemPrompt,
		MemoryMaxResults: c.MemoryMaxResults,
		MemoryMinScore:   c.MemoryMinScore,
	}
}

func (c *MemoryConfig) GetDuplicateThreshold() float64 {
	return c.DuplicateThreshold
}

func (c *MemoryConfig) GetLocale() string {
	return c.Locale
}
