package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/membot/internal/config"
	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/internal/providers/llm"
	"github.com/sandevgo/membot/internal/service/agent"
	"github.com/sandevgo/membot/internal/service/command"
	"github.com/sandevgo/membot/internal/service/memory"
	"github.com/sandevgo/membot/internal/service/session"
	"github.com/sandevgo/membot/internal/service/state"
	"github.com/sandevgo/membot/internal/storage/sqlite"
	"github.com/sandevgo/membot/internal/transport/cli"
	mcpserver "github.com/sandevgo/membot/internal/transport/mcp"
	"github.com/sandevgo/membot/internal/transport/telegram"
	"github.com/sandevgo/membot/pkg/log"
	"github.com/sandevgo/membot/pkg/srv"
	"github.com/sandevgo/membot/pkg/tokens"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	memCfg := config.NewMemoryConfig(ctx)
	providerCfg := config.NewProviderConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup("database", db.Close))

	memories := memory.NewService(sqlite.NewMemoriesRepo(db), memCfg.GetDuplicateThreshold())
	sessions := session.NewManager(
		sqlite.NewSessionsRepo(db),
		sqlite.NewMessagesRepo(db),
		memCfg.GetContextConfig().SystemPrompt,
	)

	// 3. AI Provider
	aiProvider, err := llm.NewDynamicProvider(ctx, providerCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Context assembly
	// The counter is pinned to the boot-time model; a /model switch
	// keeps the old encoding, which stays a valid upper bound for
	// the chat models we support.
	counter, err := tokens.NewCounter(providerCfg.GetModel())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize token counter")
	}
	builder := memory.NewBuilder(counter, memories)

	// 5. Fact extraction from conversation turns
	extractor := memory.NewExtractor(memories, memCfg.GetLocale())

	// 6. Agent Service
	ag := agent.NewAgent(aiProvider, sessions, builder, extractor, memCfg)

	// 7. Chat commands
	globalState := state.NewGlobalState(aiProvider)
	router := command.New(command.NewCommands(memories, sessions, providerCfg, globalState))

	// 8. Transports
	transports, err := initTransports(ctx, appCfg, ag, router, sessions, memories)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	ag *agent.Agent,
	router core.CmdRouter,
	sessions *session.Manager,
	memories *memory.Service,
) ([]srv.Service, error) {
	var services []srv.Service

	// Telegram Bot
	if cfg.IsTelegramEnabled() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, ag, router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	// Local terminal chat
	if cfg.IsCLIEnabled() {
		rl, err := cli.NewReadLine(ag, router, sessions, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	// MCP server on stdio for external agents
	if cfg.IsMCPEnabled() {
		services = append(services, mcpserver.NewServer(memories))
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
