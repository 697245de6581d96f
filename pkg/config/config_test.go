package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LLMProvider != "google" {
		t.Errorf("Expected LLMProvider 'google', got %q", cfg.LLMProvider)
	}

	if cfg.Providers.Google.Model != "gemini-2.5-flash" {
		t.Errorf("Expected model 'gemini-2.5-flash', got %q", cfg.Providers.Google.Model)
	}

	if cfg.Providers.Google.APITimeoutSeconds != 0 {
		t.Errorf("Expected no default timeout, got %d", cfg.Providers.Google.APITimeoutSeconds)
	}

	if cfg.HistoryWindow != 10 {
		t.Errorf("Expected HistoryWindow 10, got %d", cfg.HistoryWindow)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestLoad_CreateDefault(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".course_assistant", "config.json")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.HistoryWindow != 10 {
		t.Errorf("Expected default HistoryWindow 10, got %d", cfg.HistoryWindow)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}
}

func TestLoad_ExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	initialCfg := Default()
	initialCfg.HistoryWindow = 4
	if err := Save(configPath, initialCfg); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.HistoryWindow != 4 {
		t.Errorf("Expected HistoryWindow 4, got %d", cfg.HistoryWindow)
	}
}

func TestLoad_MissingFieldsKeepDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	// Explicit temperature 0 must survive; everything else falls back.
	raw := `{
  "providers": {
    "google": {
      "api_key": "file-key",
      "temperature": 0
    }
  }
}`
	if err := os.WriteFile(configPath, []byte(raw), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.LLMProvider != "google" {
		t.Errorf("Expected LLMProvider 'google', got %q", cfg.LLMProvider)
	}
	if cfg.Providers.Google.Model != "gemini-2.5-flash" {
		t.Errorf("Expected default model, got %q", cfg.Providers.Google.Model)
	}
	if cfg.Providers.Google.Temperature != 0 {
		t.Errorf("Expected temperature 0, got %f", cfg.Providers.Google.Temperature)
	}
	if cfg.APIKey() != "file-key" {
		t.Errorf("Expected key from file, got %q", cfg.APIKey())
	}
}

func TestLoad_CorruptedJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte("{invalid json}"), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("Expected error for corrupted JSON")
	}
}

func TestApplyEnv_OverridesFileCredential(t *testing.T) {
	cfg := Default()
	cfg.Providers.Google.APIKey = "file-key"

	env := map[string]string{"GEMINI_API_KEY": " env-key "}
	cfg.applyEnv(func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	})

	if cfg.APIKey() != "env-key" {
		t.Errorf("Expected env key to win, got %q", cfg.APIKey())
	}
}

func TestApplyEnv_APIKeyTakesPrecedence(t *testing.T) {
	cfg := Default()

	env := map[string]string{"API_KEY": "primary", "GEMINI_API_KEY": "secondary"}
	cfg.applyEnv(func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	})

	if cfg.Providers.Google.APIKey != "primary" {
		t.Errorf("Expected API_KEY to win, got %q", cfg.Providers.Google.APIKey)
	}
}

func TestHasCredential_FollowsSelectedProvider(t *testing.T) {
	cfg := Default()
	cfg.Providers.Google.APIKey = "g"

	if !cfg.HasCredential() {
		t.Error("Expected google credential to be found")
	}

	cfg.LLMProvider = "openrouter"
	if cfg.HasCredential() {
		t.Error("Expected openrouter credential to be missing")
	}

	cfg.Providers.OpenRouter.APIKey = "   "
	if cfg.HasCredential() {
		t.Error("Expected whitespace key to count as missing")
	}
}

func TestActiveModel(t *testing.T) {
	cfg := Default()
	tests := map[string]string{
		"google":     "gemini-2.5-flash",
		"openai":     "gpt-4o-mini",
		"openrouter": "google/gemini-2.5-flash",
	}
	for provider, want := range tests {
		cfg.LLMProvider = provider
		if got := cfg.ActiveModel(); got != want {
			t.Errorf("%s: expected model %q, got %q", provider, want, got)
		}
	}
}

func TestValidate_MissingCredentialIsValid(t *testing.T) {
	cfg := Default()
	cfg.Providers.Google.APIKey = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected missing credential to pass validation, got %v", err)
	}
}

func TestValidate_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"provider", func(c *Config) { c.LLMProvider = "bedrock" }, "LLMProvider"},
		{"history window", func(c *Config) { c.HistoryWindow = 0 }, "HistoryWindow"},
		{"temperature", func(c *Config) { c.Providers.Google.Temperature = 2.5 }, "Temperature"},
		{"timeout", func(c *Config) { c.Providers.Google.APITimeoutSeconds = -1 }, "APITimeoutSeconds"},
		{"openrouter url", func(c *Config) { c.Providers.OpenRouter.APIURL = "not a url" }, "APIURL"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Expected error to mention %s, got %v", tt.field, err)
			}
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if !strings.HasSuffix(path, filepath.Join(".course_assistant", "config.json")) {
		t.Errorf("Unexpected config path %q", path)
	}
}
