package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"course_assistant/pkg/ai"
	"course_assistant/pkg/config"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	openAIDefaultAPIURL = "https://api.openai.com/v1"
	openAIDefaultModel  = "gpt-4o-mini"
)

func init() {
	ai.Register(ai.ProviderOpenAI, NewOpenAIProvider)
}

// OpenAIProvider implements the Provider interface using the OpenAI API directly.
type OpenAIProvider struct {
	chatCompletionsClient
}

// NewOpenAIProvider creates a new OpenAI provider from config.
func NewOpenAIProvider(cfg config.Config) (ai.Provider, error) {
	providerCfg := cfg.Providers.OpenAI
	httpClient := &http.Client{Timeout: time.Duration(providerCfg.APITimeoutSeconds) * time.Second}
	return newOpenAIProviderWithHTTPClient(providerCfg, httpClient)
}

func newOpenAIProviderWithHTTPClient(cfg config.OpenAIConfig, httpClient *http.Client) (*OpenAIProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		slog.Debug("openai_provider_missing_key")
		return nil, fmt.Errorf("openai: %w", ai.ErrMissingCredential)
	}

	apiURL := strings.TrimSpace(cfg.APIURL)
	if apiURL == "" {
		apiURL = openAIDefaultAPIURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = openAIDefaultModel
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second}
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(apiURL),
		option.WithHTTPClient(httpClient),
	)

	slog.Debug("openai_provider_ready",
		"api_url", apiURL,
		"model", model,
		"timeout_seconds", cfg.APITimeoutSeconds,
	)
	return &OpenAIProvider{chatCompletionsClient{
		name:               "openai",
		client:             client,
		defaultModel:       model,
		defaultTemperature: cfg.Temperature,
		defaultMaxTokens:   cfg.MaxTokens,
	}}, nil
}

// CreateChatCompletion sends a non-streaming chat completion request.
func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	return p.complete(ctx, req)
}

// CreateChatCompletionStream sends a streaming chat completion request.
func (p *OpenAIProvider) CreateChatCompletionStream(ctx context.Context, req ai.ChatRequest) (ai.ChatStream, error) {
	return p.stream(ctx, req)
}

// Ensure interface compliance
var _ ai.Provider = (*OpenAIProvider)(nil)
