package result

import (
	"strings"

	"course_assistant/pkg/ui/components/utils"
	"course_assistant/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
)

const (
	maxPanelWidth  = 80
	maxPanelHeight = 30
	// border + vertical padding + title + blank line + footer
	chromeLines = 2 + 2 + 2 + 1
)

// ResultPanel displays command output over the chat.
type ResultPanel struct {
	title   string
	content string
	visible bool
	width   int
	height  int
	scrollY int
	lines   []string
}

// NewResultPanel creates a new result panel
func NewResultPanel() *ResultPanel {
	return &ResultPanel{}
}

// Show displays the result panel with content
func (rp *ResultPanel) Show(title, content string) {
	rp.title = title
	rp.content = content
	rp.visible = true
	rp.scrollY = 0
	rp.lines = strings.Split(utils.Sanitize(content), "\n")
}

// Hide hides the result panel
func (rp *ResultPanel) Hide() {
	rp.visible = false
}

// IsVisible returns whether the panel is visible
func (rp *ResultPanel) IsVisible() bool {
	return rp.visible
}

// SetSize sets the available screen area.
func (rp *ResultPanel) SetSize(width, height int) {
	rp.width = width
	rp.height = height
}

// ResultPanelCloseMsg is sent when the result panel is closed
type ResultPanelCloseMsg struct{}

// Update handles keyboard input for the result panel
func (rp *ResultPanel) Update(msg tea.KeyPressMsg) tea.Cmd {
	maxScroll := len(rp.lines) - rp.visibleLines()
	if maxScroll < 0 {
		maxScroll = 0
	}

	switch msg.String() {
	case "esc", "enter", "q":
		rp.Hide()
		return func() tea.Msg {
			return ResultPanelCloseMsg{}
		}
	case "up":
		if rp.scrollY > 0 {
			rp.scrollY--
		}
	case "down":
		if rp.scrollY < maxScroll {
			rp.scrollY++
		}
	case "pgup":
		rp.scrollY = max(rp.scrollY-10, 0)
	case "pgdown":
		rp.scrollY = min(rp.scrollY+10, maxScroll)
	}
	return nil
}

func (rp *ResultPanel) panelSize() (int, int) {
	return min(rp.width-4, maxPanelWidth), min(rp.height-2, maxPanelHeight)
}

func (rp *ResultPanel) visibleLines() int {
	_, h := rp.panelSize()
	return max(h-chromeLines, 3)
}

// View renders the result panel
func (rp *ResultPanel) View() string {
	if !rp.visible {
		return ""
	}

	panelWidth, _ := rp.panelSize()
	// border + horizontal padding
	contentWidth := max(panelWidth-6, 1)

	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render(utils.TruncateToWidth(rp.title, contentWidth)))
	sb.WriteString("\n\n")

	visible := rp.visibleLines()
	end := min(rp.scrollY+visible, len(rp.lines))
	for i := rp.scrollY; i < end; i++ {
		sb.WriteString(styles.TextStyle.Render(utils.TruncateToWidth(rp.lines[i], contentWidth)))
		sb.WriteString("\n")
	}

	if len(rp.lines) > visible {
		sb.WriteString(styles.FooterStyle.Render("↑↓ Desplazar • "))
	}
	sb.WriteString(styles.FooterStyle.Render("Esc Cerrar"))

	return styles.BoxStyle.Width(max(panelWidth, 1)).Render(sb.String())
}
