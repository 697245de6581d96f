package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"course_assistant/pkg/ai"
	"course_assistant/pkg/knowledge"
	"course_assistant/pkg/logging"

	"github.com/google/uuid"
)

// Session drives one conversation against a model provider. At most one send
// is in flight at a time.
type Session struct {
	mu       sync.Mutex
	store    *Store
	provider ai.Provider
	loading  bool
	updates  chan struct{}

	model             string
	systemInstruction string
	historyWindow     int
	temperature       *float64
	maxTokens         *int
	apology           string
	newID             func() string
	now               func() time.Time
	logger            *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

func WithModel(model string) Option {
	return func(s *Session) { s.model = model }
}

func WithSystemInstruction(instruction string) Option {
	return func(s *Session) { s.systemInstruction = instruction }
}

// WithHistoryWindow sets how many prior messages accompany each question.
// Non-positive values keep the default.
func WithHistoryWindow(k int) Option {
	return func(s *Session) {
		if k > 0 {
			s.historyWindow = k
		}
	}
}

func WithTemperature(t float64) Option {
	return func(s *Session) { s.temperature = &t }
}

// WithMaxTokens caps the answer length; zero leaves it to the provider.
func WithMaxTokens(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxTokens = &n
		}
	}
}

// WithIDGenerator replaces the uuid-based message id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

func WithApologyText(text string) Option {
	return func(s *Session) { s.apology = text }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession wires a session to store. provider may be nil when no client
// could be built; Send then refuses every message.
func NewSession(store *Store, provider ai.Provider, opts ...Option) *Session {
	if store == nil {
		store = NewStore()
	}
	s := &Session{
		store:             store,
		provider:          provider,
		updates:           make(chan struct{}, 1),
		model:             knowledge.DefaultModel,
		systemInstruction: knowledge.SystemInstruction(),
		historyWindow:     DefaultHistoryWindow,
		apology:           knowledge.ApologyText,
		newID:             uuid.NewString,
		now:               time.Now,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	store.OnChange(s.signal)
	return s
}

// Store returns the conversation the session writes to.
func (s *Session) Store() *Store {
	return s.store
}

// Ready reports whether a provider is available.
func (s *Session) Ready() bool {
	return s.provider != nil
}

// Loading reports whether a send is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Updates delivers a signal after the conversation or the loading flag
// changes. Signals coalesce: receivers should re-read the session state.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

func (s *Session) signal() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

// Send appends text as a user message and streams the model's answer into the
// store. It blocks until the answer is complete and reports whether the
// message was accepted. Blank text, a missing provider or a send already in
// flight are refused without touching the conversation.
func (s *Session) Send(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.provider == nil {
		s.mu.Unlock()
		s.logger.Debug("chat_send_ignored", "reason", "no_provider")
		return false
	}
	if s.loading {
		s.mu.Unlock()
		s.logger.Debug("chat_send_ignored", "reason", "loading")
		return false
	}
	s.loading = true
	history := Window(s.store.Snapshot(), s.historyWindow)
	s.mu.Unlock()
	s.signal()

	defer s.setLoading(false)

	// Appended outside s.mu: store listeners may read the session.
	s.store.Append(Message{
		ID:        s.newID(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: s.now(),
	})
	s.stream(ctx, history, text)
	return true
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.signal()
}

func (s *Session) stream(ctx context.Context, history []Message, text string) {
	if ctx == nil {
		ctx = context.Background()
	}

	var placeholderID string
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s.logger.Error("chat_stream_panic", "panic", r)
		if placeholderID != "" {
			s.store.Finish(placeholderID)
		}
		s.appendApology()
	}()

	req := ai.ChatRequest{
		Model:       s.model,
		Messages:    BuildRequestMessages(s.systemInstruction, history, text),
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}

	if s.logger.Enabled(ctx, logging.LevelTrace) {
		s.logger.Log(ctx, logging.LevelTrace, "chat_send_prompt",
			"model", req.Model,
			"message_count", len(req.Messages),
			"messages_full", promptDump(req.Messages),
		)
	}
	s.logger.Info("chat_send_start",
		"model", req.Model,
		"history_messages", len(history),
		"message_count", len(req.Messages),
	)

	start := s.now()
	stream, err := s.provider.CreateChatCompletionStream(ctx, req)
	if err != nil {
		s.logger.Error("chat_stream_create_error", "error", err)
		s.appendApology()
		return
	}
	defer stream.Close()

	placeholderID = s.newID()
	s.store.Append(Message{
		ID:        placeholderID,
		Role:      RoleModel,
		Timestamp: s.now(),
		Streaming: true,
	})

	var acc strings.Builder
	deltas := 0
	for stream.Next() {
		delta := stream.Content()
		if delta == "" {
			continue
		}
		acc.WriteString(delta)
		deltas++
		s.store.UpdateText(placeholderID, acc.String())
	}
	s.store.Finish(placeholderID)

	if err := stream.Err(); err != nil {
		s.logger.Error("chat_stream_error",
			"error", err,
			"deltas", deltas,
			"partial_len", acc.Len(),
		)
		s.appendApology()
		return
	}

	s.logger.Info("chat_stream_done",
		"deltas", deltas,
		"response_len", acc.Len(),
		"duration", s.now().Sub(start),
	)
}

func (s *Session) appendApology() {
	s.store.Append(Message{
		ID:        s.newID(),
		Role:      RoleModel,
		Text:      s.apology,
		Timestamp: s.now(),
	})
}

func promptDump(msgs []ai.Message) string {
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		fmt.Fprintf(&b, "[%s] %s", m.Role, m.Content)
	}
	return b.String()
}
