package providers

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	"course_assistant/pkg/ai"
	"course_assistant/pkg/config"

	"google.golang.org/genai"
)

const geminiDefaultModel = "gemini-2.5-flash"

func init() {
	ai.Register(ai.ProviderGoogle, NewGoogleProvider)
}

// geminiModels is the part of *genai.Models the provider calls.
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

var newGenaiClient = genai.NewClient

// GoogleProvider answers through the Gemini API. System messages become the
// request's system instruction; every other turn is sent as history.
type GoogleProvider struct {
	models      geminiModels
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration // zero: only the caller's context bounds a call
}

// NewGoogleProvider builds the Gemini client from the google config section.
func NewGoogleProvider(cfg config.Config) (ai.Provider, error) {
	gc := cfg.Providers.Google

	key := strings.TrimSpace(gc.APIKey)
	if key == "" {
		return nil, fmt.Errorf("google: %w", ai.ErrMissingCredential)
	}

	client, err := newGenaiClient(context.Background(), &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("google: create client: %w", err)
	}

	p := &GoogleProvider{
		models:      client.Models,
		model:       cmp.Or(strings.TrimSpace(gc.Model), geminiDefaultModel),
		temperature: gc.Temperature,
		maxTokens:   gc.MaxTokens,
		timeout:     time.Duration(gc.APITimeoutSeconds) * time.Second,
	}
	slog.Debug("google_provider_ready", "model", p.model, "timeout", p.timeout)
	return p, nil
}

// geminiCall is one request in the shape the genai SDK takes.
type geminiCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (p *GoogleProvider) prepare(req ai.ChatRequest) (geminiCall, error) {
	call := geminiCall{model: cmp.Or(strings.TrimSpace(req.Model), p.model)}
	if call.model == "" {
		return call, errors.New("google: model is required")
	}

	var instruction []string
	for _, m := range req.Messages {
		switch strings.ToLower(strings.TrimSpace(m.Role)) {
		case ai.RoleSystem:
			if text := strings.TrimSpace(m.Content); text != "" {
				instruction = append(instruction, text)
			}
		case ai.RoleAssistant, "model":
			call.contents = append(call.contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			call.contents = append(call.contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if len(call.contents) == 0 {
		return call, errors.New("google: request has no conversation turns")
	}

	temperature := p.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := p.maxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	call.config = &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temperature)),
		// Thinking output is never shown, so none is requested.
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	}
	if len(instruction) > 0 {
		call.config.SystemInstruction = genai.NewContentFromText(strings.Join(instruction, "\n\n"), genai.RoleUser)
	}
	if maxTokens > 0 {
		call.config.MaxOutputTokens = int32(maxTokens)
	}
	return call, nil
}

func (p *GoogleProvider) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if p.timeout > 0 {
		return context.WithTimeout(ctx, p.timeout)
	}
	return context.WithCancel(ctx)
}

// CreateChatCompletion returns the whole answer in one response.
func (p *GoogleProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	call, err := p.prepare(req)
	if err != nil {
		return ai.ChatResponse{}, err
	}
	ctx, cancel := p.callContext(ctx)
	defer cancel()

	resp, err := p.models.GenerateContent(ctx, call.model, call.contents, call.config)
	if err != nil {
		return ai.ChatResponse{}, fmt.Errorf("google: generate: %w", err)
	}
	return ai.ChatResponse{Content: visibleText(resp), Model: call.model}, nil
}

// CreateChatCompletionStream starts a streamed answer. Nothing is sent until
// the first call to Next.
func (p *GoogleProvider) CreateChatCompletionStream(ctx context.Context, req ai.ChatRequest) (ai.ChatStream, error) {
	call, err := p.prepare(req)
	if err != nil {
		return nil, err
	}

	slog.Debug("google_chat_stream_request",
		"model", call.model,
		"turns", len(call.contents),
		"has_system_instruction", call.config.SystemInstruction != nil,
	)
	ctx, cancel := p.callContext(ctx)
	return newGeminiStream(p.models.GenerateContentStream(ctx, call.model, call.contents, call.config), cancel), nil
}

// geminiStream yields each non-empty chunk of visible text exactly as it
// arrived. Gemini chunks are deltas: nothing is merged, trimmed or dropped.
type geminiStream struct {
	next   func() (*genai.GenerateContentResponse, error, bool)
	stop   func()
	cancel context.CancelFunc
	text   string
	err    error
	done   bool
}

func newGeminiStream(seq iter.Seq2[*genai.GenerateContentResponse, error], cancel context.CancelFunc) *geminiStream {
	next, stop := iter.Pull2(seq)
	return &geminiStream{next: next, stop: stop, cancel: cancel}
}

func (s *geminiStream) Next() bool {
	for !s.done {
		resp, err, ok := s.next()
		switch {
		case !ok:
			s.done = true
		case err != nil:
			s.err = err
			s.done = true
		default:
			if text := visibleText(resp); text != "" {
				s.text = text
				return true
			}
		}
	}
	return false
}

func (s *geminiStream) Content() string { return s.text }

func (s *geminiStream) Err() error { return s.err }

// Close stops the upstream iterator and releases the request context. It is
// safe to call more than once.
func (s *geminiStream) Close() error {
	s.done = true
	s.stop()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

var _ ai.Provider = (*GoogleProvider)(nil)

// visibleText joins the answer parts of the first candidate, skipping thoughts.
func visibleText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
