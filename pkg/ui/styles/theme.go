// Package styles provides a centralized theme for the course assistant UI.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors, built around the university's dark red.
var (
	ColorAccent      = lipgloss.Color("88")  // UAI red
	ColorAccentLight = lipgloss.Color("131") // hover/secondary red

	ColorText       = lipgloss.Color("252")
	ColorTextMuted  = lipgloss.Color("245")
	ColorTextBright = lipgloss.Color("15")

	ColorError   = lipgloss.Color("196")
	ColorWarning = lipgloss.Color("214")

	ColorUserBg      = lipgloss.Color("88")
	ColorModelBg     = lipgloss.Color("236")
	ColorPlaceholder = lipgloss.Color("240")

	ColorBorder      = lipgloss.Color("88")
	ColorBorderMuted = lipgloss.Color("239")

	ColorReminderBg = lipgloss.Color("52")
)

// Panel/Box styles
var (
	// BoxStyle is the default rounded box for overlays and panels
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	// PanelStyle frames the resources sidebar.
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderMuted).
			Padding(0, 1)
)

// Header
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(ColorAccent).
			Padding(0, 1).
			Bold(true)

	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(ColorTextBright).
				Bold(true)

	HeaderSubtitleStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	HeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorBorderMuted)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccentLight).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	// TextBoldStyle renders **bold** spans of model answers.
	TextBoldStyle = lipgloss.NewStyle().
			Foreground(ColorAccentLight).
			Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)
)

// Transcript
var (
	UserLabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(ColorUserBg).
			Padding(0, 1).
			Bold(true)

	ModelLabelStyle = lipgloss.NewStyle().
			Foreground(ColorAccentLight).
			Bold(true)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorPlaceholder)

	TypingStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Suggestions
var (
	ChipStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderMuted).
			Padding(0, 1)

	ChipKeyStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	SectionLabelStyle = lipgloss.NewStyle().
				Foreground(ColorPlaceholder).
				Bold(true)
)

// Resources panel
var (
	ReminderStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorReminderBg).
			Padding(0, 1)

	ReminderTitleStyle = lipgloss.NewStyle().
				Foreground(ColorTextBright).
				Background(ColorReminderBg).
				Bold(true)
)

// Feedback styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// FooterStyle for footer/help text
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorPlaceholder).
				Italic(true)
)
