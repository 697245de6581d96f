package resources

import (
	"strings"
	"testing"

	"course_assistant/pkg/knowledge"
	"course_assistant/pkg/ui/components/testutils"

	"github.com/charmbracelet/x/ansi"
)

func newTestPanel() *Panel {
	p := NewPanel(knowledge.Resources())
	p.SetSize(34, 24)
	return p
}

func TestPanel_HiddenByDefault(t *testing.T) {
	p := newTestPanel()
	if p.IsVisible() {
		t.Fatal("expected panel hidden")
	}
	if p.View() != "" {
		t.Fatal("hidden panel should render nothing")
	}
}

func TestPanel_Toggle(t *testing.T) {
	p := newTestPanel()
	if !p.Toggle() || !p.IsVisible() {
		t.Fatal("expected panel visible after first toggle")
	}
	p.Focus()
	if p.Toggle() || p.IsVisible() || p.IsFocused() {
		t.Fatal("expected panel hidden and unfocused after second toggle")
	}
}

func TestPanel_ViewContent(t *testing.T) {
	p := newTestPanel()
	p.Show()

	view := ansi.Strip(p.View())
	for _, want := range []string{panelTitle, "Tutorial UAIOnline", "Programa Completo", "Syllabus 2024", "Recordatorio", "Anuncios"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q\n%s", want, view)
		}
	}
	if strings.Contains(view, "**") {
		t.Error("markdown markers leaked into the reminder")
	}

	lines := strings.Split(p.View(), "\n")
	if len(lines) != 24 {
		t.Errorf("expected 24 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 34 {
			t.Errorf("line %d: expected width 34, got %d", i, w)
		}
	}
}

func TestPanel_NarrowWidthTruncates(t *testing.T) {
	p := NewPanel(knowledge.Resources())
	p.SetSize(14, 20)
	p.Show()

	for i, line := range strings.Split(p.View(), "\n") {
		if w := ansi.StringWidth(line); w > 14 {
			t.Errorf("line %d: width %d exceeds panel", i, w)
		}
	}
}

func TestPanel_SelectAndCopy(t *testing.T) {
	p := newTestPanel()
	p.Show()
	p.Focus()

	cmd := p.Update(testutils.TestKeyEnter)
	if cmd == nil {
		t.Fatal("expected copy command for tutorial link")
	}
	msg, ok := cmd().(CopyLinkMsg)
	if !ok || msg.URL != knowledge.TutorialURL {
		t.Fatalf("unexpected message %#v", msg)
	}

	p.Update(testutils.TestKeyDown)
	link, _ := p.Selected()
	if link.Title != "Programa Completo" {
		t.Fatalf("expected second link selected, got %q", link.Title)
	}
	if cmd := p.Update(testutils.TestKeyEnter); cmd != nil {
		t.Fatal("placeholder link should not be copied")
	}

	p.Update(testutils.TestKeyDown)
	if link, _ := p.Selected(); link.Title != "Programa Completo" {
		t.Fatal("selection should stop at the last link")
	}
	p.Update(testutils.TestKeyUp)
	p.Update(testutils.TestKeyUp)
	if link, _ := p.Selected(); link.Title != "Tutorial UAIOnline Ultra" {
		t.Fatal("selection should stop at the first link")
	}

	p.Update(testutils.TestKeyEsc)
	if p.IsFocused() {
		t.Fatal("esc should return focus to the chat")
	}
}

func TestPanel_FocusRequiresVisible(t *testing.T) {
	p := newTestPanel()
	p.Focus()
	if p.IsFocused() {
		t.Fatal("hidden panel must not take focus")
	}
}
