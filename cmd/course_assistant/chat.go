package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"course_assistant/pkg/chat"
	"course_assistant/pkg/commands"
	"course_assistant/pkg/knowledge"
	"course_assistant/pkg/ui"

	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/spf13/cobra"
)

const (
	linePrompt     = "› "
	lineModelLabel = "Asistente UAI: "
	lineQuit       = "/salir"
	lineHint       = "Escribí /ayuda para ver los comandos, /salir o Ctrl+D para terminar."
	lineNoProvider = "Sin conexión con el modelo: configurá la API key para enviar consultas."
)

func newChatCmd(a *app, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Conversar con el asistente (comando por defecto)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, a, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "use line mode even in a terminal")
	return cmd
}

func runChat(cmd *cobra.Command, a *app, opts *rootOptions) error {
	if usesTUI(cmd, opts) {
		return runTUI(cmd.Context(), a)
	}
	return runLineChat(cmd.Context(), a, cmd.InOrStdin(), cmd.OutOrStdout())
}

func runTUI(ctx context.Context, a *app) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := ui.NewModel(a.session, a.dispatcher,
		ui.WithContext(ctx),
		ui.WithModelName(a.cfg.ActiveModel()),
	)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// runLineChat reads one query or command per line until EOF or /salir.
func runLineChat(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	store := a.session.Store()

	fmt.Fprintf(out, "%s · %s\n\n", knowledge.CourseTitle, knowledge.CourseSubtitle)
	printer := newLinePrinter(out)
	for _, msg := range store.Snapshot() {
		printer.printWhole(msg)
	}
	fmt.Fprintln(out, lineHint)
	if !a.session.Ready() {
		fmt.Fprintln(out, lineNoProvider)
	}
	store.OnChange(func() { printer.onChange(store) })

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, linePrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, lineQuit) {
			return nil
		}

		if res := a.dispatcher.Run(line, commands.NewContext(store)); res != nil {
			if text, ok := applyLineResult(out, res); ok {
				lineSend(ctx, a, out, text)
			}
			continue
		}
		lineSend(ctx, a, out, line)
	}
	return scanner.Err()
}

func lineSend(ctx context.Context, a *app, out io.Writer, text string) {
	if !a.session.Ready() {
		fmt.Fprintln(out, lineNoProvider)
		return
	}
	a.session.Send(ctx, text)
}

// applyLineResult prints a command result. It returns the text to send when
// the command asks for one.
func applyLineResult(out io.Writer, res *commands.Result) (string, bool) {
	if res.Error != nil {
		fmt.Fprintln(out, res.Content)
		return "", false
	}

	switch res.Action {
	case commands.ResultActionSend:
		return res.Payload, true
	case commands.ResultActionCopy:
		if res.Payload != "" {
			fmt.Fprint(out, osc52.New(res.Payload))
		}
		fmt.Fprintln(out, res.Content)
		return "", false
	}

	if res.Title != "" {
		fmt.Fprintf(out, "%s\n\n", res.Title)
	}
	fmt.Fprintln(out, res.Content)
	return "", false
}

// linePrinter streams model messages to a plain writer as the store changes.
type linePrinter struct {
	out       io.Writer
	currentID string
	printed   int
	done      map[string]bool
}

func newLinePrinter(out io.Writer) *linePrinter {
	return &linePrinter{out: out, done: make(map[string]bool)}
}

// printWhole prints a finished message in one go.
func (p *linePrinter) printWhole(msg chat.Message) {
	if msg.IsUser() {
		p.done[msg.ID] = true
		return
	}
	fmt.Fprintf(p.out, "%s%s\n\n", lineModelLabel, msg.Text)
	p.done[msg.ID] = true
}

func (p *linePrinter) onChange(store *chat.Store) {
	msg, ok := store.Last()
	if !ok || msg.IsUser() || p.done[msg.ID] {
		return
	}

	if msg.ID != p.currentID {
		p.currentID = msg.ID
		p.printed = 0
		fmt.Fprint(p.out, lineModelLabel)
	}
	if len(msg.Text) > p.printed {
		fmt.Fprint(p.out, msg.Text[p.printed:])
		p.printed = len(msg.Text)
	}
	if !msg.Streaming {
		fmt.Fprint(p.out, "\n\n")
		p.done[msg.ID] = true
	}
}
