package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"
	"testing"
	"time"

	"course_assistant/pkg/ai"
	"course_assistant/pkg/chat"
	"course_assistant/pkg/config"
	"course_assistant/pkg/knowledge"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// capturedCall is what a fake chat completions endpoint saw.
type capturedCall struct {
	path    string
	header  http.Header
	payload map[string]any
}

// completionsServer answers every request with an SSE stream carrying deltas,
// or with status and no body when status is not 200.
func completionsServer(t *testing.T, status int, deltas ...string) (*http.Client, *capturedCall) {
	t.Helper()
	call := &capturedCall{}
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		call.path = req.URL.Path
		call.header = req.Header.Clone()
		if err := json.NewDecoder(req.Body).Decode(&call.payload); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = req.Body.Close()

		resp := &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Header:     make(http.Header),
			Request:    req,
		}
		if status != http.StatusOK {
			resp.Header.Set("Content-Type", "application/json")
			resp.Body = io.NopCloser(strings.NewReader(`{"error":{"message":"bad request"}}`))
			return resp, nil
		}

		var body strings.Builder
		for _, d := range deltas {
			chunk, err := json.Marshal(map[string]any{
				"id":      "chunk",
				"object":  "chat.completion.chunk",
				"created": 1,
				"model":   "m",
				"choices": []any{map[string]any{"index": 0, "delta": map[string]any{"content": d}}},
			})
			if err != nil {
				t.Fatalf("marshal chunk: %v", err)
			}
			body.WriteString("data: " + string(chunk) + "\n\n")
		}
		body.WriteString("data: [DONE]\n\n")
		resp.Header.Set("Content-Type", "text/event-stream")
		resp.Body = io.NopCloser(strings.NewReader(body.String()))
		return resp, nil
	})}
	return client, call
}

func (c *capturedCall) roles(t *testing.T) []string {
	t.Helper()
	messages, ok := c.payload["messages"].([]any)
	if !ok {
		t.Fatalf("Expected messages in payload, got %v", c.payload["messages"])
	}
	roles := make([]string, 0, len(messages))
	for _, m := range messages {
		obj, _ := m.(map[string]any)
		role, _ := obj["role"].(string)
		roles = append(roles, role)
	}
	return roles
}

func TestOpenRouterProvider_StreamsDeltasVerbatim(t *testing.T) {
	client, call := completionsServer(t, http.StatusOK, "**", "**Unidad 1**", "Ja", "Ja")

	provider, err := newOpenRouterProviderWithHTTPClient(config.OpenRouterConfig{
		APIKey:      "or-key",
		APIURL:      "https://openrouter.test/api/v1",
		HTTPReferer: "https://uai.edu.ar",
		XTitle:      "course_assistant",
		Model:       "google/gemini-2.5-flash",
		Temperature: 0.7,
	}, client)
	if err != nil {
		t.Fatalf("newOpenRouterProviderWithHTTPClient() error: %v", err)
	}

	maxTokens := 256
	stream, err := provider.CreateChatCompletionStream(context.Background(), ai.ChatRequest{
		Messages:  []ai.Message{{Role: ai.RoleUser, Content: "hola"}},
		MaxTokens: &maxTokens,
	})
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error: %v", err)
	}
	got := strings.Join(drain(t, stream), "")
	if err := stream.Err(); err != nil {
		t.Fatalf("stream error: %v", err)
	}

	if got != "****Unidad 1**JaJa" {
		t.Fatalf("Expected every delta in order, got %q", got)
	}
	if call.path != "/api/v1/chat/completions" {
		t.Errorf("Unexpected path %q", call.path)
	}
	if call.header.Get("Authorization") != "Bearer or-key" {
		t.Errorf("Unexpected Authorization header %q", call.header.Get("Authorization"))
	}
	if call.header.Get("HTTP-Referer") != "https://uai.edu.ar" || call.header.Get("X-Title") != "course_assistant" {
		t.Errorf("Expected attribution headers, got referer=%q title=%q", call.header.Get("HTTP-Referer"), call.header.Get("X-Title"))
	}
	if call.payload["model"] != "google/gemini-2.5-flash" || call.payload["stream"] != true {
		t.Errorf("Unexpected payload model=%v stream=%v", call.payload["model"], call.payload["stream"])
	}
	if temp, _ := call.payload["temperature"].(float64); math.Abs(temp-0.7) > 0.0001 {
		t.Errorf("Expected temperature 0.7, got %v", call.payload["temperature"])
	}
	if mt, _ := call.payload["max_tokens"].(float64); int(mt) != 256 {
		t.Errorf("Expected max_tokens 256, got %v", call.payload["max_tokens"])
	}
}

func TestOpenAIProvider_CourseRequestLayout(t *testing.T) {
	client, call := completionsServer(t, http.StatusOK, "Hola")

	provider, err := newOpenAIProviderWithHTTPClient(config.OpenAIConfig{
		APIKey: "sk-test",
		APIURL: "https://openai.test/v1",
	}, client)
	if err != nil {
		t.Fatalf("newOpenAIProviderWithHTTPClient() error: %v", err)
	}

	history := []chat.Message{chat.WelcomeMessage(time.Now())}
	stream, err := provider.CreateChatCompletionStream(context.Background(), ai.ChatRequest{
		Messages: chat.BuildRequestMessages(knowledge.SystemInstruction(), history, "¿Qué es el TP?"),
	})
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error: %v", err)
	}
	drain(t, stream)

	if call.path != "/v1/chat/completions" {
		t.Errorf("Unexpected path %q", call.path)
	}
	if call.payload["model"] != openAIDefaultModel {
		t.Errorf("Expected default model %q, got %v", openAIDefaultModel, call.payload["model"])
	}
	if got := strings.Join(call.roles(t), ","); got != "system,assistant,user" {
		t.Fatalf("Expected roles system,assistant,user, got %s", got)
	}
	messages := call.payload["messages"].([]any)
	first := messages[0].(map[string]any)
	if first["content"] != knowledge.SystemInstruction() {
		t.Error("Expected the course knowledge base as the first message")
	}
}

func TestOpenAIProvider_RejectedRequest(t *testing.T) {
	client, _ := completionsServer(t, http.StatusBadRequest)

	provider, err := newOpenAIProviderWithHTTPClient(config.OpenAIConfig{APIKey: "sk-test", APIURL: "https://openai.test/v1"}, client)
	if err != nil {
		t.Fatalf("newOpenAIProviderWithHTTPClient() error: %v", err)
	}

	stream, err := provider.CreateChatCompletionStream(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hola"}},
	})
	if err == nil {
		stream.Close()
		t.Fatal("Expected the rejected request to fail at creation")
	}
}

func TestOpenAIProvider_MissingKey(t *testing.T) {
	cfg := config.Default()
	cfg.Providers.OpenAI.APIKey = ""

	_, err := NewOpenAIProvider(cfg)
	if !errors.Is(err, ai.ErrMissingCredential) {
		t.Fatalf("Expected ErrMissingCredential, got %v", err)
	}
}

func TestNewOpenRouterProvider_Defaults(t *testing.T) {
	cfg := config.Default()
	cfg.Providers.OpenRouter.APIKey = "or-key"

	provider, err := NewOpenRouterProvider(cfg)
	if err != nil {
		t.Fatalf("NewOpenRouterProvider() error: %v", err)
	}
	p, ok := provider.(*OpenRouterProvider)
	if !ok {
		t.Fatalf("Expected *OpenRouterProvider, got %T", provider)
	}
	if p.defaultModel != "google/gemini-2.5-flash" {
		t.Fatalf("Expected the Gemini route by default, got %q", p.defaultModel)
	}
}

func TestOpenRouterProvider_ConfigErrors(t *testing.T) {
	valid := config.OpenRouterConfig{APIKey: "k", APIURL: "https://openrouter.test", Model: "m"}

	tests := []struct {
		name    string
		mutate  func(*config.OpenRouterConfig)
		wantErr string
	}{
		{"missing key", func(c *config.OpenRouterConfig) { c.APIKey = "" }, "api key is missing"},
		{"missing url", func(c *config.OpenRouterConfig) { c.APIURL = " " }, "api_url is required"},
		{"missing model", func(c *config.OpenRouterConfig) { c.Model = "" }, "model is required"},
		{"negative timeout", func(c *config.OpenRouterConfig) { c.APITimeoutSeconds = -1 }, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			_, err := newOpenRouterProviderWithHTTPClient(cfg, nil)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestToChatMessageParam_Roles(t *testing.T) {
	for _, role := range []string{"system", "user", "assistant", "model", " Model "} {
		if _, err := toChatMessageParam(ai.Message{Role: role, Content: "x"}); err != nil {
			t.Errorf("role %q: unexpected error %v", role, err)
		}
	}
	if _, err := toChatMessageParam(ai.Message{Role: "tool", Content: "x"}); err == nil {
		t.Error("Expected an unsupported role to be rejected")
	}
}

func TestChatCompletionsClient_RequiresModelAndMessages(t *testing.T) {
	c := &chatCompletionsClient{name: "test"}

	if _, err := c.buildChatParams(ai.ChatRequest{Messages: []ai.Message{{Role: "user", Content: "x"}}}); err == nil {
		t.Error("Expected an error without a model")
	}
	if _, err := c.buildChatParams(ai.ChatRequest{Model: "m"}); err == nil {
		t.Error("Expected an error without messages")
	}
}

func TestProvidersRegistered(t *testing.T) {
	for _, pt := range []ai.ProviderType{ai.ProviderGoogle, ai.ProviderOpenAI, ai.ProviderOpenRouter} {
		if !ai.Registered(pt) {
			t.Errorf("Expected provider %q to be registered", pt)
		}
	}
}
