package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/rfhold/dialogctl/internal/config"
	"github.com/rfhold/dialogctl/internal/telemetry"
)

var version = "dev"

// cliOptions holds the parsed command line flags
type cliOptions struct {
	configPath string
	openDialog string
	debug      bool
	logFile    string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts cliOptions

	root := &cobra.Command{
		Use:           "dialogctl",
		Short:         "Open and drive modal dialogs in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Read dialogs from `path` instead of discovering dialogctl.toml")
	root.Flags().StringVar(&opts.openDialog, "open", "", "Open the dialog called `name` at startup")
	root.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	root.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to `path`")

	root.AddCommand(newValidateCmd(&opts), newVersionCmd())
	return root
}

func newValidateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the dialog configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if path == "" {
				path = "built-in dialogs"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d dialogs ok\n", path, len(cfg.Dialogs))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dialogctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dialogctl %s\n", version)
		},
	}
}

// loadConfig reads path when given, otherwise discovers the config from the
// working directory, and validates the result.
func loadConfig(path string) (*config.Config, string, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err != nil {
			return nil, "", err
		}
		cfg, path, err = config.Discover(wd)
	}
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		if path == "" {
			return nil, "", fmt.Errorf("invalid config: %w", err)
		}
		return nil, "", fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, path, nil
}

func runApp(ctx context.Context, opts cliOptions) error {
	cfg, path, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.openDialog != "" {
		if _, ok := cfg.Dialogs[opts.openDialog]; !ok {
			return fmt.Errorf("unknown dialog %q, available: %v", opts.openDialog, cfg.Names())
		}
	}

	telemetry.SetVersion(version)
	tel, err := telemetry.Setup(ctx, telemetry.Options{Debug: opts.debug, LogFile: opts.logFile})
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: telemetry shutdown: %v\n", err)
		}
	}()

	// Keep browser launcher output off the alt screen.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	deps := NewProductionDependencies(tel)
	deps.Logger.Info("starting dialogctl", "config", path, "dialogs", len(cfg.Dialogs))

	m := initialModel(AppContext{
		Config:      cfg,
		ConfigPath:  path,
		StartDialog: opts.openDialog,
	}, deps)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
