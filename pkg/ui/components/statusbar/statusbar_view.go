package statusbar

import (
	"strings"

	"course_assistant/pkg/ui/styles"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// State is the connection state shown at the left of the bar.
type State int

const (
	StateReady State = iota
	StateBusy
	StateOffline
)

func (s State) label() string {
	switch s {
	case StateBusy:
		return "● Respondiendo"
	case StateOffline:
		return "● Sin conexión"
	default:
		return "● Listo"
	}
}

func (s State) style() lipgloss.Style {
	switch s {
	case StateBusy:
		return stateBusyStyle
	case StateOffline:
		return stateOfflineStyle
	default:
		return stateReadyStyle
	}
}

const separator = " │ "

// StatusBarView renders the single footer line under the chat input.
type StatusBarView struct {
	state   State
	message string
	hint    string
	model   string
	width   int
}

// NewStatusBarView creates a new status bar view
func NewStatusBarView() *StatusBarView {
	return &StatusBarView{width: 80}
}

func (s *StatusBarView) SetState(state State) {
	s.state = state
}

// SetMessage sets a notice that replaces the hint until cleared.
func (s *StatusBarView) SetMessage(msg string) {
	s.message = strings.TrimSpace(msg)
}

// SetHint sets the text shown when there is no message.
func (s *StatusBarView) SetHint(hint string) {
	s.hint = hint
}

// SetModel updates the active model displayed.
func (s *StatusBarView) SetModel(model string) {
	s.model = strings.TrimSpace(model)
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// Render returns the bar padded to exactly the configured width. The model
// name is right-aligned and dropped first when space runs out.
func (s *StatusBarView) Render() string {
	if s.width <= 0 {
		return ""
	}

	left := s.state.label()
	text, textStyle := s.hint, styles.FooterStyle
	if s.message != "" {
		text, textStyle = s.message, messageStyle
	}

	plain := left
	if text != "" {
		plain += separator + text
	}
	if ansi.StringWidth(plain) > s.width {
		plain = ansi.Truncate(plain, s.width, "…")
	}

	// Style the pieces that survived truncation.
	styled := s.state.style().Render(plain)
	if rest, ok := strings.CutPrefix(plain, left+separator); ok {
		styled = s.state.style().Render(left) + separatorStyle.Render(separator) + textStyle.Render(rest)
	}

	used := ansi.StringWidth(plain)
	if s.model != "" {
		if gap := s.width - used - ansi.StringWidth(s.model); gap >= 2 {
			styled += strings.Repeat(" ", gap) + modelStyle.Render(s.model)
			used = s.width
		}
	}
	if used < s.width {
		styled += strings.Repeat(" ", s.width-used)
	}
	return styled
}

var (
	stateReadyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)
	stateBusyStyle    = lipgloss.NewStyle().Foreground(styles.ColorWarning).Bold(true)
	stateOfflineStyle = lipgloss.NewStyle().Foreground(styles.ColorError).Bold(true)

	separatorStyle = lipgloss.NewStyle().Foreground(styles.ColorBorderMuted)
	messageStyle   = lipgloss.NewStyle().Foreground(styles.ColorAccentLight)
	modelStyle     = lipgloss.NewStyle().Foreground(styles.ColorPlaceholder)
)
