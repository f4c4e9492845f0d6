package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/sandevgo/membot/pkg/log"
)

// supportedProviders mirrors the provider factory switch. Validating
// here keeps a bad /model switch from poisoning the persisted config
// and breaking the next boot.
var supportedProviders = map[string]bool{
	"openai":     true,
	"anthropic":  true,
	"openrouter": true,
	"ollama":     true,
	"custom":     true,
	"mock":       true,
}

type ProviderConfig struct {
	Provider string `env:"MEMBOT_PROVIDER" envDefault:"openai"`
	Model    string `env:"MEMBOT_MODEL" envDefault:"gpt-4"`

	OpenAIAPIKey     string `env:"MEMBOT_OPENAI_API_KEY"`
	AnthropicAPIKey  string `env:"MEMBOT_ANTHROPIC_API_KEY"`
	OpenRouterAPIKey string `env:"MEMBOT_OPENROUTER_API_KEY"`
	OllamaBaseURL    string `env:"MEMBOT_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey     string `env:"MEMBOT_OLLAMA_API_KEY"`
	CustomBaseURL    string `env:"MEMBOT_CUSTOM_BASE_URL"`
	CustomAPIKey     string `env:"MEMBOT_CUSTOM_API_KEY"`

	mu sync.RWMutex
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	c.Provider = strings.ToLower(c.Provider)
	return c
}

func (c *ProviderConfig) GetProvider() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Provider
}

func (c *ProviderConfig) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

// SetModel switches to a "provider/model" spec and persists the
// choice so it survives a restart. The model part may itself contain
// slashes, as OpenRouter ids do.
func (c *ProviderConfig) SetModel(spec string) error {
	provider, model, ok := strings.Cut(spec, "/")
	if !ok || model == "" {
		return fmt.Errorf("model must be provider/model, got %q", spec)
	}

	provider = strings.ToLower(provider)
	if !supportedProviders[provider] {
		return fmt.Errorf("unknown provider %q", provider)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.Provider = provider
	c.Model = model
	return c.persist()
}

// persist rewrites the provider keys in the runtime .env, keeping
// every other key intact. A missing .env means config came from the
// process environment; the in-memory change still applies.
func (c *ProviderConfig) persist() error {
	envPath := filepath.Join(GetRuntimePath(), ".env")

	vars, err := godotenv.Read(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", envPath, err)
	}

	vars["MEMBOT_PROVIDER"] = c.Provider
	vars["MEMBOT_MODEL"] = c.Model
	return godotenv.Write(vars, envPath)
}

func (c *ProviderConfig) GetOpenAIAPIKey() string {
	return c.OpenAIAPIKey
}

func (c *ProviderConfig) GetAnthropicAPIKey() string {
	return c.AnthropicAPIKey
}

func (c *ProviderConfig) GetOpenRouterAPIKey() string {
	return c.OpenRouterAPIKey
}

func (c *ProviderConfig) GetOllamaBaseURL() string {
	return c.OllamaBaseURL
}

func (c *ProviderConfig) GetOllamaAPIKey() string {
	return c.OllamaAPIKey
}

func (c *ProviderConfig) GetCustomBaseURL() string {
	return c.CustomBaseURL
}

func (c *ProviderConfig) GetCustomAPIKey() string {
	return c.CustomAPIKey
}
