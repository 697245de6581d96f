package main

import (
	"errors"
	"fmt"
	"strings"

	"course_assistant/pkg/ai"
	"course_assistant/pkg/knowledge"

	"github.com/spf13/cobra"
)

var errAskFailed = errors.New("the model request failed")

func newAskCmd(a *app) *cobra.Command {
	var suggestion int

	cmd := &cobra.Command{
		Use:   "ask [pregunta]",
		Short: "Hacer una única consulta y mostrar la respuesta",
		Long: `Envía una consulta al asistente y escribe la respuesta a medida que llega.

Ejemplos:
  course_assistant ask "¿Cuándo es el primer parcial?"
  course_assistant ask --suggestion 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if suggestion != 0 {
				s, ok := knowledge.SuggestionAt(suggestion)
				if !ok {
					return fmt.Errorf("suggestion %d out of range (1-%d)", suggestion, len(knowledge.Suggestions()))
				}
				text = s.Query
			}
			if text == "" {
				return errors.New("a question or --suggestion is required")
			}
			if !a.session.Ready() {
				return fmt.Errorf("%s: %w", a.cfg.LLMProvider, ai.ErrMissingCredential)
			}

			store := a.session.Store()
			printer := newLinePrinter(cmd.OutOrStdout())
			// The welcome message is context, not output.
			for _, msg := range store.Snapshot() {
				printer.done[msg.ID] = true
			}
			store.OnChange(func() { printer.onChange(store) })

			if !a.session.Send(cmd.Context(), text) {
				return errAskFailed
			}
			if last, ok := store.Last(); ok && !last.IsUser() && last.Text == knowledge.ApologyText {
				return errAskFailed
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&suggestion, "suggestion", "s", 0, "send suggested question N instead of a free question")
	return cmd
}
