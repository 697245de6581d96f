package main

import (
	"fmt"

	"course_assistant/pkg/commands"
	"course_assistant/pkg/knowledge"

	"github.com/spf13/cobra"
)

func newSuggestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions",
		Short: "Listar las preguntas sugeridas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, s := range knowledge.Suggestions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n   %s\n", i+1, s.Label, s.Query)
			}
			return nil
		},
	}
}

func newResourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "Listar los recursos rápidos de la cursada",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), commands.FormatResources(knowledge.Resources()))
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n%s\n", knowledge.ReminderTitle, knowledge.Reminder)
			return nil
		},
	}
}
