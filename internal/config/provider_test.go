package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
)

func TestSetModelParsing(t *testing.T) {
	t.Setenv("MEMBOT_RUNTIME_PATH", t.TempDir())

	tests := []struct {
		name         string
		spec         string
		wantErr      string
		wantProvider string
		wantModel    string
	}{
		{
			name:         "simple spec",
			spec:         "ollama/llama3.2",
			wantProvider: "ollama",
			wantModel:    "llama3.2",
		},
		{
			name:         "openrouter ids keep their slashes",
			spec:         "openrouter/openai/gpt-3.5-turbo",
			wantProvider: "openrouter",
			wantModel:    "openai/gpt-3.5-turbo",
		},
		{
			name:         "provider is case-insensitive",
			spec:         "OpenAI/gpt-4o",
			wantProvider: "openai",
			wantModel:    "gpt-4o",
		},
		{
			name:    "missing slash",
			spec:    "gpt-4o",
			wantErr: "provider/model",
		},
		{
			name:    "empty model part",
			spec:    "openai/",
			wantErr: "provider/model",
		},
		{
			name:    "unknown provider",
			spec:    "skynet/t-800",
			wantErr: "unknown provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewProviderConfig(context.Background())

			err := cfg.SetModel(tt.spec)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("SetModel(%q) error = %v, want %q", tt.spec, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetModel(%q): %v", tt.spec, err)
			}
			if cfg.GetProvider() != tt.wantProvider {
				t.Errorf("provider = %q, want %q", cfg.GetProvider(), tt.wantProvider)
			}
			if cfg.GetModel() != tt.wantModel {
				t.Errorf("model = %q, want %q", cfg.GetModel(), tt.wantModel)
			}
		})
	}
}

func TestSetModelPersistsToEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MEMBOT_RUNTIME_PATH", dir)

	envPath := filepath.Join(dir, ".env")
	initial := map[string]string{
		"MEMBOT_PROVIDER":       "openai",
		"MEMBOT_MODEL":          "gpt-4",
		"MEMBOT_OPENAI_API_KEY": "sk-test",
		"MEMBOT_ENABLE_CLI":     "true",
	}
	if err := godotenv.Write(initial, envPath); err != nil {
		t.Fatalf("seed .env: %v", err)
	}

	cfg := NewProviderConfig(context.Background())
	if err := cfg.SetModel("ollama/llama3.2"); err != nil {
		t.Fatalf("SetModel: %v", err)
	}

	saved, err := godotenv.Read(envPath)
	if err != nil {
		t.Fatalf("read .env: %v", err)
	}
	if saved["MEMBOT_PROVIDER"] != "ollama" || saved["MEMBOT_MODEL"] != "llama3.2" {
		t.Errorf("persisted provider/model = %q/%q", saved["MEMBOT_PROVIDER"], saved["MEMBOT_MODEL"])
	}
	// Unrelated keys survive the rewrite.
	if saved["MEMBOT_OPENAI_API_KEY"] != "sk-test" || saved["MEMBOT_ENABLE_CLI"] != "true" {
		t.Errorf("unrelated keys were lost: %v", saved)
	}
}

func TestSetModelWithoutEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MEMBOT_RUNTIME_PATH", dir)

	cfg := NewProviderConfig(context.Background())

	// No .env on disk: the change applies in memory only.
	if err := cfg.SetModel("mock/test"); err != nil {
		t.Fatalf("SetModel: %v", err)
	}
	if cfg.GetProvider() != "mock" {
		t.Errorf("provider = %q, want mock", cfg.GetProvider())
	}
	if _, err := os.Stat(filepath.Join(dir, ".env")); !os.IsNotExist(err) {
		t.Error("SetModel should not create an .env file")
	}
}
