package ui

import (
	"fmt"
	"strings"

	"course_assistant/pkg/knowledge"
	"course_assistant/pkg/ui/components/statusbar"
	"course_assistant/pkg/ui/components/utils"
	"course_assistant/pkg/ui/styles"

	"charm.land/lipgloss/v2"
)

const (
	headerHeight = 2 // title line + bottom border
	inputHeight  = 3 // textarea + border
	footerHeight = 1

	resourcesWidth = 34
	// Below this width the resources panel replaces the transcript.
	minSplitWidth = 70

	suggestionsLabel = "PREGUNTAS SUGERIDAS"
)

// layout sizes every component from the window size and the current
// conversation length.
func (m *Model) layout() {
	if !m.ready {
		return
	}

	bodyHeight := m.height - headerHeight - inputHeight - footerHeight
	if sugg := m.renderSuggestions(); sugg != "" {
		bodyHeight -= lipgloss.Height(sugg)
	}
	bodyHeight = max(bodyHeight, 1)

	chatWidth := m.width
	if m.resources.IsVisible() {
		panelWidth := resourcesWidth
		if m.width < minSplitWidth {
			panelWidth = m.width
		}
		m.resources.SetSize(panelWidth, bodyHeight)
		chatWidth = m.width - panelWidth
	}

	m.viewport.SetWidth(max(chatWidth, 0))
	m.viewport.SetHeight(bodyHeight)
	m.input.SetWidth(max(m.width-4, 1))
}

func (m Model) render() string {
	sections := []string{m.renderHeader(), m.renderBody()}
	if sugg := m.renderSuggestions(); sugg != "" {
		sections = append(sections, sugg)
	}
	sections = append(sections, m.renderInput(), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := styles.BadgeStyle.Render("UAI") + " " +
		styles.HeaderTitleStyle.Render(knowledge.CourseTitle) + " " +
		styles.HeaderSubtitleStyle.Render(strings.ToUpper(knowledge.CourseSubtitle))
	return styles.HeaderStyle.Width(m.width).Render(utils.TruncateStyled(title, m.width))
}

func (m Model) renderBody() string {
	if !m.resources.IsVisible() {
		return m.viewport.View()
	}
	if m.viewport.Width() == 0 {
		return m.resources.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), m.resources.View())
}

// renderSuggestions lays the canned questions out as chips, wrapping rows to
// the window width. Empty once the conversation has started.
func (m Model) renderSuggestions() string {
	if !knowledge.SuggestionsVisible(m.messageCount) {
		return ""
	}

	var rows []string
	var row []string
	rowWidth := 0
	for i, s := range knowledge.Suggestions() {
		chip := styles.ChipStyle.Render(
			styles.ChipKeyStyle.Render(fmt.Sprintf("Alt+%d", i+1)) + " " +
				utils.TruncateToWidth(s.Label, max(m.width-12, 1)),
		)
		w := lipgloss.Width(chip)
		if rowWidth > 0 && rowWidth+1+w > m.width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
			rowWidth = 0
		}
		if rowWidth > 0 {
			row = append(row, " ")
			rowWidth++
		}
		row = append(row, chip)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	label := styles.SectionLabelStyle.Render(suggestionsLabel)
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{label}, rows...)...)
}

func (m Model) renderInput() string {
	style := styles.PanelStyle
	if m.input.Focused() {
		style = style.BorderForeground(styles.ColorBorder)
	}
	return style.Width(m.width).Render(m.input.View())
}

func (m Model) renderFooter() string {
	state := statusbar.StateReady
	switch {
	case !m.session.Ready():
		state = statusbar.StateOffline
	case m.busy():
		state = statusbar.StateBusy
	}
	m.statusBar.SetState(state)
	m.statusBar.SetMessage(m.notice)
	m.statusBar.SetWidth(m.width)
	return m.statusBar.Render()
}

// renderOverlay centers a panel over the screen.
func (m Model) renderOverlay(panel string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}
