package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"course_assistant/pkg/ai"
	"course_assistant/pkg/chat"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
)

// Test helpers for creating v2 KeyPressMsg values

// newKeyPressMsg creates a KeyPressMsg from a key code (for special keys)
func newKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// newTextKeyPressMsg creates a KeyPressMsg for text input
func newTextKeyPressMsg(text string) tea.KeyPressMsg {
	if len(text) == 0 {
		return tea.KeyPressMsg(tea.Key{})
	}
	r := []rune(text)[0]
	return tea.KeyPressMsg(tea.Key{
		Code: r,
		Text: text,
	})
}

// Common special keys using the new API
var (
	testKeyUp     = newKeyPressMsg(tea.KeyUp)
	testKeyDown   = newKeyPressMsg(tea.KeyDown)
	testKeyEnter  = newKeyPressMsg(tea.KeyEnter)
	testKeyTab    = newKeyPressMsg(tea.KeyTab)
	testKeyEsc    = newKeyPressMsg(tea.KeyEscape)
	testKeyPgUp   = newKeyPressMsg(tea.KeyPgUp)
	testKeyPgDown = newKeyPressMsg(tea.KeyPgDown)
)

// Ctrl+X keys using modifier
func newCtrlKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModCtrl,
	})
}

func newAltKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModAlt,
	})
}

// Common ctrl combinations
var (
	testKeyCtrlC = newCtrlKeyPressMsg('c')
	testKeyCtrlR = newCtrlKeyPressMsg('r')
)

// stubStream replays fixed deltas.
type stubStream struct {
	deltas []string
	pos    int
}

func (s *stubStream) Next() bool {
	if s.pos >= len(s.deltas) {
		return false
	}
	s.pos++
	return true
}

func (s *stubStream) Content() string { return s.deltas[s.pos-1] }
func (s *stubStream) Err() error      { return nil }
func (s *stubStream) Close() error    { return nil }

// stubProvider answers every request with the same deltas.
type stubProvider struct {
	deltas   []string
	requests []ai.ChatRequest
}

func (p *stubProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	return ai.ChatResponse{}, errors.New("not used")
}

func (p *stubProvider) CreateChatCompletionStream(ctx context.Context, req ai.ChatRequest) (ai.ChatStream, error) {
	p.requests = append(p.requests, req)
	return &stubStream{deltas: p.deltas}, nil
}

var testTime = time.Date(2024, 3, 11, 9, 30, 0, 0, time.Local)

// newTestSession returns a session seeded with the welcome message. A nil
// provider yields a session that refuses every send.
func newTestSession(provider ai.Provider) *chat.Session {
	store := chat.NewStore(chat.WelcomeMessage(testTime))
	if provider == nil {
		return chat.NewSession(store, nil)
	}
	return chat.NewSession(store, provider,
		chat.WithClock(func() time.Time { return testTime }),
	)
}

// newSizedModel builds a model that has already seen a window size.
func newSizedModel(session *chat.Session, clipboard *strings.Builder) Model {
	m := NewModel(session, nil, WithClipboard(clipboard))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

// typeText feeds text into the model one key at a time.
func typeText(m Model, text string) Model {
	for _, r := range text {
		updated, _ := m.Update(newTextKeyPressMsg(string(r)))
		m = updated.(Model)
	}
	return m
}

// runCmd executes cmd and every command it batches, returning the
// messages they produced. Spinner ticks are skipped.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case nil, spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}
