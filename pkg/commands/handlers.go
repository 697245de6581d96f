package commands

import (
	"fmt"
	"strconv"
	"strings"

	"course_assistant/pkg/knowledge"
)

// SuggestionsHandler lists the canned questions, or sends one when given its number.
type SuggestionsHandler struct{}

func (h *SuggestionsHandler) Name() string        { return "/sugerencias" }
func (h *SuggestionsHandler) Description() string { return "Preguntas sugeridas (/sugerencias N para enviar una)" }

func (h *SuggestionsHandler) Execute(ctx *Context) *Result {
	if len(ctx.Args) > 0 {
		n, err := strconv.Atoi(ctx.Args[0])
		if err != nil {
			return &Result{
				Title:   "Preguntas sugeridas",
				Content: fmt.Sprintf("%q no es un número de sugerencia.", ctx.Args[0]),
				Error:   err,
			}
		}
		s, ok := knowledge.SuggestionAt(n)
		if !ok {
			return &Result{
				Title:   "Preguntas sugeridas",
				Content: fmt.Sprintf("No existe la sugerencia %d.", n),
				Error:   fmt.Errorf("suggestion %d out of range", n),
			}
		}
		return &Result{
			Title:   "Preguntas sugeridas",
			Action:  ResultActionSend,
			Payload: s.Query,
		}
	}

	var sb strings.Builder
	for i, s := range knowledge.Suggestions() {
		fmt.Fprintf(&sb, "%d. %s\n   %s\n", i+1, s.Label, s.Query)
	}
	return &Result{
		Title:   "Preguntas sugeridas",
		Content: strings.TrimRight(sb.String(), "\n"),
	}
}

// ResourcesHandler toggles the quick resources panel.
type ResourcesHandler struct{}

func (h *ResourcesHandler) Name() string        { return "/recursos" }
func (h *ResourcesHandler) Description() string { return "Mostrar u ocultar los recursos rápidos" }

func (h *ResourcesHandler) Execute(ctx *Context) *Result {
	return &Result{
		Title:   "Recursos Rápidos",
		Content: FormatResources(knowledge.Resources()),
		Action:  ResultActionToggleResources,
	}
}

// FormatResources renders the resource list as plain text.
func FormatResources(resources []knowledge.ResourceLink) string {
	var sb strings.Builder
	for _, r := range resources {
		fmt.Fprintf(&sb, "%s %s - %s\n", r.Icon, r.Title, r.Description)
		if r.HasURL() {
			fmt.Fprintf(&sb, "   %s\n", r.URL)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// CopyHandler copies the latest answer to the clipboard.
type CopyHandler struct{}

func (h *CopyHandler) Name() string        { return "/copiar" }
func (h *CopyHandler) Description() string { return "Copiar la última respuesta" }

func (h *CopyHandler) Execute(ctx *Context) *Result {
	text, ok := ctx.LastAnswer()
	if !ok {
		return &Result{
			Title:   "Copiar",
			Content: "Todavía no hay respuestas para copiar.",
		}
	}
	return &Result{
		Title:   "Copiar",
		Content: "Última respuesta copiada al portapapeles.",
		Action:  ResultActionCopy,
		Payload: text,
	}
}

// HelpHandler handles the /ayuda command
type HelpHandler struct {
	dispatcher *Dispatcher
}

func (h *HelpHandler) Name() string        { return "/ayuda" }
func (h *HelpHandler) Description() string { return "Mostrar esta ayuda" }

func (h *HelpHandler) Execute(ctx *Context) *Result {
	var sb strings.Builder
	sb.WriteString("Comandos disponibles:\n")
	if h.dispatcher != nil {
		for _, handler := range h.dispatcher.Handlers() {
			fmt.Fprintf(&sb, "  %-13s %s\n", handler.Name(), handler.Description())
		}
	}
	sb.WriteString(`
Atajos:
  Enter         Enviar la consulta
  Alt+1..4      Enviar una pregunta sugerida
  Ctrl+R        Recursos rápidos
  PgUp/PgDn     Desplazar la conversación
  Esc           Cerrar este panel
  Ctrl+C        Salir`)

	return &Result{
		Title:   "Ayuda",
		Content: sb.String(),
	}
}
