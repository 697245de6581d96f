package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"course_assistant/pkg/ai"
	_ "course_assistant/pkg/ai/providers"
	"course_assistant/pkg/chat"
	"course_assistant/pkg/commands"
	"course_assistant/pkg/config"
	"course_assistant/pkg/knowledge"
	"course_assistant/pkg/logging"
	"course_assistant/pkg/version"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Overridable in tests.
var (
	newProvider = ai.NewFromConfig
	timeNow     = time.Now
	isTerminal  = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
)

// app holds what a command needs once configuration is loaded.
type app struct {
	cfg        config.Config
	session    *chat.Session
	dispatcher *commands.Dispatcher
}

type rootOptions struct {
	configPath string
	verbose    bool
	plain      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "course_assistant",
		Short: "Asistente de la materia Negocios Digitales (UAI)",
		Long: `Asistente conversacional de onboarding para Negocios Digitales.

Responde consultas sobre el programa, el sistema de evaluación, el trabajo
práctico integrador y el campus virtual. En una terminal abre la interfaz de
chat; con la entrada redirigida lee una consulta por línea.`,
		Version:      version.Summary(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Static listings work without configuration
			switch cmd.Name() {
			case "version", "help", "suggestions", "resources":
				return nil
			}
			return a.init(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, a, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.GetConfigPath(), "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "also write logs to stderr (line mode only)")

	rootCmd.Flags().BoolVar(&opts.plain, "plain", false, "use line mode even in a terminal")

	rootCmd.AddCommand(newChatCmd(a, opts))
	rootCmd.AddCommand(newAskCmd(a))
	rootCmd.AddCommand(newSuggestionsCmd())
	rootCmd.AddCommand(newResourcesCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// usesTUI reports whether cmd will take over the terminal.
func usesTUI(cmd *cobra.Command, opts *rootOptions) bool {
	switch cmd.Name() {
	case "chat", "course_assistant":
		return !opts.plain && isTerminal()
	}
	return false
}

// init loads configuration, sets up logging and builds the chat session.
// A missing credential is logged and leaves the session without a provider.
func (a *app) init(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", opts.configPath, err)
	}

	var console io.Writer
	if opts.verbose && !usesTUI(cmd, opts) {
		console = cmd.ErrOrStderr()
	}
	logger, err := logging.Init(cfg, console)
	if err != nil {
		// Logging falls back to discard; the assistant still works.
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	logger.Info("app_start",
		"version", version.Summary(),
		"provider", cfg.LLMProvider,
		"model", cfg.ActiveModel(),
		"config_path", opts.configPath,
	)

	provider, err := newProvider(cfg)
	if err != nil {
		if errors.Is(err, ai.ErrMissingCredential) {
			slog.Error("api_key_missing", "provider", cfg.LLMProvider)
		} else {
			slog.Error("provider_init_error", "provider", cfg.LLMProvider, "error", err)
		}
		provider = nil
	}

	store := chat.NewStore(chat.WelcomeMessage(timeNow()))
	a.cfg = cfg
	a.dispatcher = commands.NewDispatcher()
	a.session = chat.NewSession(store, provider,
		chat.WithModel(cfg.ActiveModel()),
		chat.WithSystemInstruction(knowledge.SystemInstruction()),
		chat.WithHistoryWindow(cfg.HistoryWindow),
		chat.WithLogger(logger),
	)
	return nil
}
