package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v9"

	"github.com/sandevgo/membot/pkg/log"
)

type AppConfig struct {
	// Transport Flags
	EnableTelegram bool `env:"MEMBOT_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"MEMBOT_ENABLE_CLI" envDefault:"true"`
	EnableMCP      bool `env:"MEMBOT_ENABLE_MCP" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return GetRuntimePath()
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(GetRuntimePath(), "membot.db")
}

func (c AppConfig) IsTelegramEnabled() bool {
	return c.EnableTelegram
}

func (c AppConfig) IsCLIEnabled() bool {
	return c.EnableCLI
}

func (c AppConfig) IsMCPEnabled() bool {
	return c.EnableMCP
}
