// Package resources renders the quick resources panel shown beside the chat.
package resources

import (
	"strings"

	"course_assistant/pkg/knowledge"
	"course_assistant/pkg/ui/components/utils"
	"course_assistant/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"
)

const (
	panelTitle    = "Recursos Rápidos"
	panelSubtitle = "Links útiles para la cursada"
	footerHint    = "↑↓ Elegir • Enter Copiar link • Esc Cerrar"
	borderSize    = 1
	paddingH      = 1
)

// CopyLinkMsg asks the host to copy a resource URL to the clipboard.
type CopyLinkMsg struct {
	Title string
	URL   string
}

// Panel is the resources sidebar.
type Panel struct {
	links    []knowledge.ResourceLink
	visible  bool
	focused  bool
	selected int
	width    int
	height   int
}

// NewPanel creates a hidden panel listing links.
func NewPanel(links []knowledge.ResourceLink) *Panel {
	return &Panel{links: links}
}

func (p *Panel) Show()           { p.visible = true }
func (p *Panel) Hide()           { p.visible = false; p.focused = false }
func (p *Panel) IsVisible() bool { return p.visible }

// Toggle flips visibility and returns the new state.
func (p *Panel) Toggle() bool {
	if p.visible {
		p.Hide()
	} else {
		p.Show()
	}
	return p.visible
}

// Focus gives the panel the keyboard; Blur returns it to the chat input.
func (p *Panel) Focus()          { p.focused = p.visible }
func (p *Panel) Blur()           { p.focused = false }
func (p *Panel) IsFocused() bool { return p.focused }

// SetSize sets the panel dimensions including its border.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *Panel) Width() int { return p.width }

// Selected returns the highlighted link.
func (p *Panel) Selected() (knowledge.ResourceLink, bool) {
	if p.selected < 0 || p.selected >= len(p.links) {
		return knowledge.ResourceLink{}, false
	}
	return p.links[p.selected], true
}

// Update handles keys while the panel has focus.
func (p *Panel) Update(msg tea.KeyPressMsg) tea.Cmd {
	if !p.visible {
		return nil
	}

	switch msg.String() {
	case "up", "k":
		if p.selected > 0 {
			p.selected--
		}
	case "down", "j":
		if p.selected < len(p.links)-1 {
			p.selected++
		}
	case "enter":
		link, ok := p.Selected()
		if !ok || !link.HasURL() {
			return nil
		}
		return func() tea.Msg {
			return CopyLinkMsg{Title: link.Title, URL: link.URL}
		}
	case "esc":
		p.Blur()
	}
	return nil
}

// View renders the panel, or an empty string when hidden.
func (p *Panel) View() string {
	if !p.visible {
		return ""
	}

	contentWidth := p.width - 2*(borderSize+paddingH)
	if contentWidth < 1 {
		contentWidth = 1
	}
	contentHeight := p.height - 2*borderSize
	if contentHeight < 1 {
		contentHeight = 1
	}

	var lines []string
	lines = append(lines, styles.TitleStyle.Render(utils.TruncateToWidth(panelTitle, contentWidth)))
	lines = append(lines, styles.TextMutedStyle.Render(utils.TruncateToWidth(panelSubtitle, contentWidth)))
	lines = append(lines, "")

	for i, link := range p.links {
		lines = append(lines, p.renderLink(i, link, contentWidth)...)
		lines = append(lines, "")
	}

	lines = append(lines, styles.ReminderTitleStyle.Render(utils.PadStyled(utils.TruncateToWidth(knowledge.ReminderTitle, contentWidth), contentWidth)))
	for _, line := range wrapPlain(strings.ReplaceAll(knowledge.Reminder, "**", ""), contentWidth) {
		lines = append(lines, styles.ReminderStyle.UnsetPadding().Render(utils.PadStyled(line, contentWidth)))
	}

	// Footer pinned to the bottom.
	footer := []string{styles.FooterStyle.Render(utils.TruncateToWidth(knowledge.Footer, contentWidth))}
	if p.focused {
		footer = append(footer, styles.FooterStyle.Render(utils.TruncateToWidth(footerHint, contentWidth)))
	}
	bodyHeight := contentHeight - len(footer)
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	body := utils.FitLines(lines, contentWidth, bodyHeight)
	body = append(body, utils.FitLines(footer, contentWidth, len(footer))...)

	return styles.PanelStyle.
		Width(p.width).
		Render(strings.Join(body, "\n"))
}

func (p *Panel) renderLink(i int, link knowledge.ResourceLink, width int) []string {
	icon := link.Icon
	iconWidth := runewidth.StringWidth(icon) + 1
	titleWidth := width - iconWidth
	if titleWidth < 1 {
		titleWidth = 1
	}

	title := utils.TruncateToWidth(link.Title, titleWidth)
	desc := utils.TruncateToWidth(link.Description, titleWidth)

	titleStyle := styles.TextStyle.Bold(true)
	if p.focused && i == p.selected {
		titleStyle = styles.TextBoldStyle.Underline(true)
	}

	return []string{
		icon + " " + titleStyle.Render(title),
		strings.Repeat(" ", iconWidth) + styles.TextMutedStyle.Render(desc),
	}
}

func wrapPlain(text string, width int) []string {
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(text) {
		for _, part := range utils.SplitByWidth(word, width) {
			w := runewidth.StringWidth(part)
			if lineWidth > 0 && lineWidth+1+w > width {
				lines = append(lines, line.String())
				line.Reset()
				lineWidth = 0
			}
			if lineWidth > 0 {
				line.WriteByte(' ')
				lineWidth++
			}
			line.WriteString(part)
			lineWidth += w
		}
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
