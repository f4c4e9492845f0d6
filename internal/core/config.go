package core

import "context"

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	IsTelegramEnabled() bool
	IsCLIEnabled() bool
	IsMCPEnabled() bool
}

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	SetModel(model string) error
	GetOpenAIAPIKey() string
	GetAnthropicAPIKey() string
	GetOpenRouterAPIKey() string
	GetOllamaBaseURL() string
	GetOllamaAPIKey() string
	GetCustomBaseURL() string
	GetCustomAPIKey() string
}

type MemoryConfig interface {
	GetContextConfig() ContextConfig
	GetDuplicateThreshold() float64
	GetLocale() string
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}

type GlobalState interface {
	ChangeModel(ctx context.Context, model string) error
}
