package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"course_assistant/pkg/chat"
	"course_assistant/pkg/commands"
	"course_assistant/pkg/knowledge"
	"course_assistant/pkg/ui/components/resources"
	"course_assistant/pkg/ui/components/result"
	"course_assistant/pkg/ui/components/statusbar"
	"course_assistant/pkg/ui/components/transcript"
	"course_assistant/pkg/ui/styles"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Model represents the Bubble Tea application state
type Model struct {
	ctx        context.Context
	session    *chat.Session
	dispatcher *commands.Dispatcher

	// UI Components
	viewport    viewport.Model
	input       textarea.Model
	spinner     spinner.Model
	resources   *resources.Panel
	resultPanel *result.ResultPanel
	statusBar   *statusbar.StatusBarView

	// clipboard receives OSC 52 sequences for /copiar and resource links.
	clipboard io.Writer

	// UI state
	width  int
	height int
	ready  bool
	// pending covers the gap between Enter and Send taking the loading flag.
	pending bool
	loading bool
	notice  string
	// messageCount drives suggestion visibility.
	messageCount int
}

// sessionUpdateMsg is delivered after the session signals a change.
type sessionUpdateMsg struct{}

// sendDoneMsg is delivered when Session.Send returns.
type sendDoneMsg struct {
	accepted bool
}

// Option configures a Model.
type Option func(*Model)

// WithContext sets the context Send runs under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithClipboard redirects clipboard writes, stdout by default.
func WithClipboard(w io.Writer) Option {
	return func(m *Model) {
		if w != nil {
			m.clipboard = w
		}
	}
}

// WithModelName shows the active model in the status bar.
func WithModelName(name string) Option {
	return func(m *Model) {
		m.statusBar.SetModel(name)
	}
}

// NewModel creates a new Bubble Tea model
func NewModel(session *chat.Session, dispatcher *commands.Dispatcher, opts ...Option) Model {
	if dispatcher == nil {
		dispatcher = commands.NewDispatcher()
	}

	ta := textarea.New()
	ta.Placeholder = knowledge.InputHint
	ta.Prompt = "› "
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.SetHeight(1)
	ta.Focus()

	vp := viewport.New()
	vp.MouseWheelEnabled = true

	sp := spinner.New(
		spinner.WithSpinner(spinner.Points),
		spinner.WithStyle(styles.TypingStyle),
	)

	m := Model{
		ctx:          context.Background(),
		session:      session,
		dispatcher:   dispatcher,
		viewport:     vp,
		input:        ta,
		spinner:      sp,
		resources:    resources.NewPanel(knowledge.Resources()),
		resultPanel:  result.NewResultPanel(),
		statusBar:    statusbar.NewStatusBarView(),
		clipboard:    os.Stdout,
		messageCount: session.Store().Len(),
	}
	m.statusBar.SetHint(knowledge.Disclaimer)
	for _, opt := range opts {
		opt(&m)
	}
	if !session.Ready() {
		m.notice = noticeNoProvider
	}
	return m
}

const (
	noticeNoProvider = "Sin conexión con el modelo: configurá la API key para enviar consultas."
	noticeCopied     = "Respuesta copiada al portapapeles."
	noticeLinkCopied = "Link copiado: %s"
)

// Init initializes the model (Bubble Tea lifecycle method)
func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.ctx, m.session)
}

// listenForUpdates waits for the next session signal.
func listenForUpdates(ctx context.Context, session *chat.Session) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-session.Updates():
			return sessionUpdateMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) sendCmd(text string) tea.Cmd {
	ctx := m.ctx
	session := m.session
	return func() tea.Msg {
		return sendDoneMsg{accepted: session.Send(ctx, text)}
	}
}

// busy reports whether a send is queued or in flight.
func (m Model) busy() bool {
	return m.pending || m.loading
}

// Update handles incoming messages (Bubble Tea lifecycle method)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resultPanel.SetSize(msg.Width, msg.Height)
		m.layout()
		m.refresh()
		return m, nil

	case sessionUpdateMsg:
		m.loading = m.session.Loading()
		m.refresh()
		return m, listenForUpdates(m.ctx, m.session)

	case sendDoneMsg:
		m.pending = false
		m.loading = m.session.Loading()
		if !msg.accepted {
			slog.Debug("ui_send_refused")
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case resources.CopyLinkMsg:
		m.copyToClipboard(msg.URL)
		m.notice = fmt.Sprintf(noticeLinkCopied, msg.Title)
		return m, nil

	case result.ResultPanelCloseMsg:
		cmd := m.input.Focus()
		return m, cmd

	case tea.PasteMsg:
		if m.resultPanel.IsVisible() || m.resources.IsFocused() {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// Overlays take the keyboard first.
	if m.resultPanel.IsVisible() {
		return m, m.resultPanel.Update(msg)
	}
	if key == "ctrl+r" {
		m.toggleResources()
		focus := m.input.Focus()
		return m, focus
	}
	if m.resources.IsFocused() {
		cmd := m.resources.Update(msg)
		if !m.resources.IsFocused() {
			focus := m.input.Focus()
			return m, tea.Batch(cmd, focus)
		}
		return m, cmd
	}

	switch key {
	case "tab":
		if m.resources.IsVisible() {
			m.resources.Focus()
			m.input.Blur()
		}
		return m, nil
	case "alt+1", "alt+2", "alt+3", "alt+4":
		n := int(key[len(key)-1] - '0')
		s, ok := knowledge.SuggestionAt(n)
		if !ok {
			return m, nil
		}
		return m.submit(s.Query)
	case "enter":
		if m.busy() {
			return m, nil
		}
		line := m.input.Value()
		if res := m.dispatcher.Run(line, commands.NewContext(m.session.Store())); res != nil {
			m.input.Reset()
			return m.applyResult(res)
		}
		return m.submit(line)
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case "esc":
		m.notice = ""
		return m, nil
	}

	if m.busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands text to the session unless it would be refused.
func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	if m.busy() || strings.TrimSpace(text) == "" {
		return m, nil
	}
	if !m.session.Ready() {
		m.notice = noticeNoProvider
		return m, nil
	}
	m.input.Reset()
	m.pending = true
	m.notice = ""
	m.refresh()
	return m, tea.Batch(m.sendCmd(text), m.spinner.Tick)
}

func (m Model) applyResult(res *commands.Result) (tea.Model, tea.Cmd) {
	if res.Error != nil {
		slog.Debug("command_error", "title", res.Title, "error", res.Error)
		m.notice = res.Content
		return m, nil
	}

	switch res.Action {
	case commands.ResultActionToggleResources:
		m.toggleResources()
		return m, nil
	case commands.ResultActionCopy:
		if res.Payload == "" {
			m.notice = res.Content
			return m, nil
		}
		m.copyToClipboard(res.Payload)
		m.notice = noticeCopied
		return m, nil
	case commands.ResultActionSend:
		return m.submit(res.Payload)
	}

	m.resultPanel.Show(res.Title, res.Content)
	m.input.Blur()
	return m, nil
}

func (m *Model) toggleResources() {
	m.resources.Toggle()
	m.layout()
	m.refresh()
}

func (m Model) copyToClipboard(text string) {
	if _, err := fmt.Fprint(m.clipboard, osc52.New(text)); err != nil {
		slog.Error("clipboard_write_error", "error", err)
	}
}

// refresh re-renders the transcript from the store and keeps the newest
// message in view.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	messages := m.session.Store().Snapshot()
	if len(messages) != m.messageCount {
		m.messageCount = len(messages)
		m.layout()
	}

	content := transcript.Render(messages, m.viewport.Width())
	if m.busy() {
		content += "\n\n" + m.typingIndicator()
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(content)
	if atBottom || m.busy() {
		m.viewport.GotoBottom()
	}
}

func (m Model) typingIndicator() string {
	return transcript.ModelHeader() + " " + m.spinner.View()
}

// View renders the UI (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.WindowTitle = knowledge.CourseTitle

	if !m.ready {
		v.SetContent("Cargando...")
		return v
	}

	if m.resultPanel.IsVisible() {
		v.SetContent(m.renderOverlay(m.resultPanel.View()))
		return v
	}

	v.SetContent(m.render())
	return v
}
