// Package cli wires the clubsite cobra commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"clubsite/internal/api"
	"clubsite/internal/config"
	"clubsite/internal/logging"
	"clubsite/internal/trace"
	"clubsite/internal/ui"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// env is the state shared by all commands once PersistentPreRunE has run.
type env struct {
	cfg    config.Config
	logger zerolog.Logger
	closer io.Closer
	traces *trace.Provider
}

// client builds the backend client from the loaded configuration.
func (e *env) client() *api.Client {
	return api.NewClient(e.cfg.BackendURL,
		api.WithHTTPClient(&http.Client{Timeout: e.cfg.HTTPTimeout}),
		api.WithLogger(logging.Component(e.logger, "api")),
		api.WithTracer(e.traces.Tracer("clubsite/api")),
	)
}

// NewRootCmd creates the root command. Without a subcommand it runs the
// terminal site, or prints a text dump when stdout is not a terminal.
func NewRootCmd(version string) *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:           "clubsite",
		Short:         "Browse a club's site in the terminal",
		Long:          "clubsite renders a club's profile, events, team and social links from its backend, falling back to built-in content when the backend is unavailable.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example:       rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return e.teardown(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return runDump(cmd.Context(), e, cmd.OutOrStdout(), formatText)
			}
			return runTUI(cmd.Context(), e)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default $"+config.EnvConfig+")")
	flags.String("backend-url", "", "backend URL prefix for /api/* requests")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-file", "", `log file path, "-" for stderr`)
	flags.Duration("http-timeout", 0, "per-request timeout (0 = none)")

	cmd.AddCommand(newDumpCmd(e), newFixturesCmd(e))
	return cmd
}

const rootCmdExample = `  # Browse the site against a local backend
  clubsite --backend-url http://localhost:8787

  # Print every page as JSON
  clubsite dump --output json

  # Serve sample content with the events endpoint failing
  clubsite fixtures serve --content fixtures.yaml`

// setup loads configuration (defaults < file < env < flags), then logging and tracing.
func (e *env) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	e.cfg = cfg

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	e.logger, e.closer = logger, closer

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e.traces, err = trace.Setup(ctx, cfg.Trace)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	e.logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("backend_url", cfg.BackendURL).
		Bool("tracing", e.traces != nil).
		Msg("starting")
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"backend-url": &cfg.BackendURL,
		"log-level":   &cfg.Log.Level,
		"log-file":    &cfg.Log.File,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	if flags.Changed("http-timeout") {
		cfg.HTTPTimeout, _ = flags.GetDuration("http-timeout")
	}
	return cfg.Validate()
}

func (e *env) teardown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := e.traces.Shutdown(ctx); err != nil {
		e.logger.Warn().Err(err).Msg("trace shutdown")
	}
	if e.closer != nil {
		return e.closer.Close()
	}
	return nil
}

func runTUI(ctx context.Context, e *env) error {
	model := ui.NewAppModel(ui.NewFetchers(e.client()), logging.Component(e.logger, "ui"))
	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
