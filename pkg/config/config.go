package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is wrapped by every validation failure returned from Validate.
var ErrInvalid = errors.New("invalid configuration")

// Environment variables that override the credential stored in the config file.
// API_KEY is checked first for Google to match the hosted widget deployment.
var credentialEnv = map[string][]string{
	"google":     {"API_KEY", "GEMINI_API_KEY"},
	"openai":     {"OPENAI_API_KEY"},
	"openrouter": {"OPENROUTER_API_KEY"},
}

// Config represents the application configuration
type Config struct {
	LLMProvider   string          `json:"llm_provider" validate:"oneof=google openai openrouter"`
	Providers     ProvidersConfig `json:"providers"`
	HistoryWindow int             `json:"history_window" validate:"gt=0"`
	LogLevel      string          `json:"log_level" validate:"omitempty,oneof=trace debug info warn warning error"`
	LogFormat     string          `json:"log_format" validate:"omitempty,oneof=json text"`
	LogFile       string          `json:"log_file"`
}

// ProvidersConfig groups per-provider settings.
type ProvidersConfig struct {
	Google     GoogleConfig     `json:"google"`
	OpenAI     OpenAIConfig     `json:"openai"`
	OpenRouter OpenRouterConfig `json:"openrouter"`
}

// GoogleConfig holds the Gemini API configuration
type GoogleConfig struct {
	APIKey            string  `json:"api_key"`
	Model             string  `json:"model" validate:"required"`
	Temperature       float64 `json:"temperature" validate:"gte=0,lte=2"`
	MaxTokens         int     `json:"max_tokens" validate:"gte=0"`
	APITimeoutSeconds int     `json:"api_timeout_seconds" validate:"gte=0"` // 0 disables the timeout
}

// OpenAIConfig holds the OpenAI API configuration
type OpenAIConfig struct {
	APIKey            string  `json:"api_key"`
	APIURL            string  `json:"api_url" validate:"omitempty,url"`
	Model             string  `json:"model" validate:"required"`
	Temperature       float64 `json:"temperature" validate:"gte=0,lte=2"`
	MaxTokens         int     `json:"max_tokens" validate:"gte=0"`
	APITimeoutSeconds int     `json:"api_timeout_seconds" validate:"gte=0"`
}

// OpenRouterConfig holds the OpenRouter API configuration
type OpenRouterConfig struct {
	APIKey            string  `json:"api_key"`
	APIURL            string  `json:"api_url" validate:"required,url"`
	Model             string  `json:"model" validate:"required"`
	Temperature       float64 `json:"temperature" validate:"gte=0,lte=2"`
	MaxTokens         int     `json:"max_tokens" validate:"gte=0"`
	APITimeoutSeconds int     `json:"api_timeout_seconds" validate:"gte=0"`
	HTTPReferer       string  `json:"http_referer"`
	XTitle            string  `json:"x_title"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		LLMProvider: "google",
		Providers: ProvidersConfig{
			Google: GoogleConfig{
				Model:       "gemini-2.5-flash",
				Temperature: 0.7,
			},
			OpenAI: OpenAIConfig{
				APIURL:      "https://api.openai.com/v1",
				Model:       "gpt-4o-mini",
				Temperature: 0.7,
			},
			OpenRouter: OpenRouterConfig{
				APIURL:      "https://openrouter.ai/api/v1",
				Model:       "google/gemini-2.5-flash",
				Temperature: 0.7,
				XTitle:      "course_assistant",
			},
		},
		HistoryWindow: 10,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// Load loads configuration from the specified path.
// If the file doesn't exist, creates one with default values.
// Fields missing from an existing file keep their defaults.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			cfg.applyEnv(os.LookupEnv)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnv(os.LookupEnv)

	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	targets := map[string]*string{
		"google":     &c.Providers.Google.APIKey,
		"openai":     &c.Providers.OpenAI.APIKey,
		"openrouter": &c.Providers.OpenRouter.APIKey,
	}
	for provider, names := range credentialEnv {
		for _, name := range names {
			if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
				*targets[provider] = strings.TrimSpace(v)
				break
			}
		}
	}
}

// APIKey returns the credential of the selected provider.
func (c Config) APIKey() string {
	switch c.LLMProvider {
	case "openai":
		return strings.TrimSpace(c.Providers.OpenAI.APIKey)
	case "openrouter":
		return strings.TrimSpace(c.Providers.OpenRouter.APIKey)
	default:
		return strings.TrimSpace(c.Providers.Google.APIKey)
	}
}

// ActiveModel returns the model configured for the selected provider.
func (c Config) ActiveModel() string {
	switch c.LLMProvider {
	case "openai":
		return c.Providers.OpenAI.Model
	case "openrouter":
		return c.Providers.OpenRouter.Model
	default:
		return c.Providers.Google.Model
	}
}

// HasCredential reports whether the selected provider has an API key.
// A missing key is not a validation error: the app starts without sending.
func (c Config) HasCredential() bool {
	return c.APIKey() != ""
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s failed on '%s'", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(messages, "; "))
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".course_assistant", "config.json")
	}
	return filepath.Join(homeDir, ".course_assistant", "config.json")
}
