// Package transcript renders the conversation for the chat viewport.
package transcript

import (
	"strings"
	"time"

	"course_assistant/pkg/chat"
	"course_assistant/pkg/ui/components/utils"
	"course_assistant/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

const (
	userLabel  = "Vos"
	modelLabel = "Asistente UAI"
	timeLayout = "15:04"
)

// FormatTime renders a message time as HH:MM in the local zone.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}

// ModelHeader is the author label of model messages and of the typing
// indicator.
func ModelHeader() string {
	return styles.ModelLabelStyle.Render("🎓 " + modelLabel)
}

// Render lays out the whole conversation at the given width.
func Render(messages []chat.Message, width int) string {
	if width <= 0 {
		return ""
	}
	blocks := make([]string, 0, len(messages))
	for _, msg := range messages {
		blocks = append(blocks, RenderMessage(msg, width))
	}
	return strings.Join(blocks, "\n\n")
}

// RenderMessage renders one message: a header line with author and time, then
// the wrapped body. User messages are right-aligned like a chat bubble.
func RenderMessage(msg chat.Message, width int) string {
	bodyWidth := width - 2
	if bodyWidth > 0 && width > 40 {
		// Keep bubbles narrower than the pane so alignment is visible.
		bodyWidth = width * 85 / 100
	}
	if bodyWidth < 1 {
		bodyWidth = 1
	}

	var header string
	if msg.IsUser() {
		header = styles.UserLabelStyle.Render(userLabel)
	} else {
		header = ModelHeader()
	}
	if ts := FormatTime(msg.Timestamp); ts != "" {
		header += " " + styles.TimestampStyle.Render(ts)
	}

	lines := []string{header}
	lines = append(lines, RenderText(msg.Text, bodyWidth)...)

	if !msg.IsUser() {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		if pad := width - ansi.StringWidth(line); pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}

type token struct {
	text string
	bold bool
	href string
}

// RenderText wraps text to width, rendering **bold** spans and bare links.
func RenderText(text string, width int) []string {
	text = utils.Sanitize(text)
	if text == "" {
		return []string{""}
	}

	var rendered []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			rendered = append(rendered, "")
			continue
		}
		indent := leadingSpaces(line)
		lineWidth := width - indent
		if lineWidth < 1 {
			indent, lineWidth = 0, width
		}
		for _, wrapped := range wrapTokens(tokenize(line), lineWidth) {
			rendered = append(rendered, strings.Repeat(" ", indent)+wrapped)
		}
	}
	return rendered
}

func leadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// tokenize splits a line into words, toggling bold at every "**" marker.
func tokenize(line string) []token {
	var tokens []token
	bold := false

	for len(line) > 0 {
		idx := strings.Index(line, "**")
		segment := line
		if idx >= 0 {
			segment = line[:idx]
		}
		for _, word := range strings.Fields(segment) {
			tok := token{text: word, bold: bold}
			if isLink(word) {
				tok.href = word
			}
			tokens = append(tokens, tok)
		}
		if idx < 0 {
			break
		}
		bold = !bold
		line = line[idx+2:]
	}

	return tokens
}

func isLink(word string) bool {
	return strings.HasPrefix(word, "http://") || strings.HasPrefix(word, "https://") || strings.HasPrefix(word, "www.")
}

func wrapTokens(tokens []token, width int) []string {
	var lines []string
	var line []token
	lineWidth := 0

	flush := func() {
		lines = append(lines, renderTokens(line))
		line = nil
		lineWidth = 0
	}

	for _, tok := range tokens {
		for _, part := range utils.SplitByWidth(tok.text, width) {
			partWidth := ansi.StringWidth(part)
			if lineWidth > 0 && lineWidth+1+partWidth > width {
				flush()
			}
			if lineWidth > 0 {
				lineWidth++
			}
			line = append(line, token{text: part, bold: tok.bold, href: tok.href})
			lineWidth += partWidth
		}
	}
	if len(line) > 0 {
		flush()
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func renderTokens(tokens []token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			sb.WriteString(" ")
		}
		switch {
		case tok.href != "":
			sb.WriteString(ansi.SetHyperlink(tok.href) + styles.LinkStyle.Render(tok.text) + ansi.ResetHyperlink())
		case tok.bold:
			sb.WriteString(styles.TextBoldStyle.Render(tok.text))
		default:
			sb.WriteString(styles.TextStyle.Render(tok.text))
		}
	}
	return sb.String()
}
