// Package cli implements the infringecheck command line: running the API
// server, running analyses locally or against a server, browsing saved
// reports and checking the reference data.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/InfringeCheck/internal/app"
	"github.com/turtacn/InfringeCheck/internal/config"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeCheck/pkg/client"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats accepted by --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// DefaultServerAddr is used by commands that always talk to a server when
// --server is not given.
const DefaultServerAddr = "http://localhost:8080"

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	NoColor      bool
	Timeout      time.Duration
	ServerAddr   string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	ConfigPath   string
	Logger       logging.Logger
	OutputFormat string
	Timeout      time.Duration
	ServerAddr   string

	// appOptions are passed to app.New by commands that run the pipeline in
	// process.
	appOptions []app.Option
}

// Client returns an SDK client for --server, or for DefaultServerAddr when
// the flag is unset.
func (c *CLIContext) Client() (*client.Client, error) {
	addr := c.ServerAddr
	if addr == "" {
		addr = DefaultServerAddr
	}
	return client.New(addr, client.WithTimeout(c.Timeout), client.WithUserAgent("infringecheck-cli/"+Version))
}

// Remote reports whether --server was given.
func (c *CLIContext) Remote() bool {
	return c.ServerAddr != ""
}

// NewRootCommand creates the root cobra command with all global flags and subcommands.
func NewRootCommand() *cobra.Command {
	return newRootCommand()
}

func newRootCommand(appOpts ...app.Option) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "infringecheck",
		Short:   "InfringeCheck CLI, patent infringement analysis against company product portfolios",
		Long:    "InfringeCheck resolves a patent and a company from the reference data, asks a language\nmodel which of the company's products most likely infringe the patent, and keeps the\nresulting reports for later review.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts, appOpts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./configs/config.yaml when present)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error); overrides log.level")
	pf.StringVarP(&opts.OutputFormat, "output", "o", OutputTable, "output format (table, json)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	pf.DurationVar(&opts.Timeout, "timeout", 3*time.Minute, "request timeout when talking to a server")
	pf.StringVar(&opts.ServerAddr, "server", "", "API server address, e.g. http://localhost:8080")

	cmd.AddCommand(
		newServeCmd(),
		newAnalyzeCmd(),
		newReportCmd(),
		newDataCmd(),
	)
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *RootOptions, appOpts []app.Option) error {
	switch opts.OutputFormat {
	case OutputTable, OutputJSON:
	default:
		return errors.NewValidationError(fmt.Sprintf("unknown output format %q; expected table|json", opts.OutputFormat))
	}
	if opts.NoColor {
		color.NoColor = true
	}

	path := resolveConfigPath(opts.ConfigPath)
	cfg, err := config.LoadOrEnv(path)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		ConfigPath:   path,
		Logger:       logger,
		OutputFormat: opts.OutputFormat,
		Timeout:      opts.Timeout,
		ServerAddr:   opts.ServerAddr,
		appOptions:   append(appOpts, app.WithVersion(Version)),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// resolveConfigPath returns explicit when set, otherwise the first default
// location that exists, otherwise "" (environment only).
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	searchPaths := []string{filepath.Join("configs", "config.yaml")}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".infringecheck", "config.yaml"))
	}
	for _, p := range searchPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// initLogger creates a logger configured for CLI usage (output to stderr).
func initLogger(cfg *config.Config) (logging.Logger, error) {
	return logging.NewLogger(logging.LogConfig{
		Level:            strings.ToLower(cfg.Log.Level),
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "command context is nil")
	}

	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

//Personal.AI order the ending
