// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/quinn-tui/internal/config"
	"github.com/jeranaias/quinn-tui/internal/controller"
	"github.com/jeranaias/quinn-tui/internal/gateway"
	"github.com/jeranaias/quinn-tui/internal/logging"
	"github.com/jeranaias/quinn-tui/internal/rulebook"
)

// BuildInfo carries version metadata injected at build time.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

// app holds the state shared by every command for one invocation.
type app struct {
	build BuildInfo

	// Global flags
	configPath string
	backendURL string
	rulebook   string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
}

// Execute runs the command line and returns the process exit code.
func Execute(build BuildInfo) int {
	root := NewRootCommand(build)
	if err := root.Execute(); err != nil {
		DisplayError(os.Stderr, err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// NewRootCommand builds the full command tree.
func NewRootCommand(build BuildInfo) *cobra.Command {
	a := &app{build: build, log: logging.Nop()}

	root := &cobra.Command{
		Use:   "quinn",
		Short: "Ask rules questions against an uploaded rulebook",
		Long: `quinn is a terminal client for a rulebook question-answering backend.

Upload a rulebook, pick it, and ask questions; answers are grounded in
the selected document.

Run without arguments to start the interactive terminal UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
		RunE: a.runTUI,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.quinn/config.toml)")
	root.PersistentFlags().StringVar(&a.backendURL, "backend", "", "Backend base URL (overrides backend.url)")
	root.PersistentFlags().StringVar(&a.rulebook, "rulebook", "", "Rulebook to use instead of the default selection")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.newAskCommand(),
		a.newChatCommand(),
		a.newRulebooksCommand(),
		a.newStatusCommand(),
		a.newConfigCommand(),
		a.newVersionCommand(),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFromPath(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if a.backendURL != "" {
		cfg.Backend.URL = a.backendURL
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --backend: %w", err)
		}
	}
	a.cfg = cfg
	config.SetGlobal(cfg)

	log, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s logging disabled: %v\n", WarningStyle.Render("[WARN]"), err)
		log = logging.Nop()
	}
	a.log = log
	a.log.Debug("starting",
		zap.String("command", cmd.CommandPath()),
		zap.String("backend", cfg.Backend.URL))
	return nil
}

// newClient returns a gateway client for the configured backend.
func (a *app) newClient() *gateway.Client {
	return gateway.NewClientWithConfig(&gateway.ClientConfig{
		BaseURL: a.cfg.Backend.URL,
		Logger:  a.log,
	})
}

// newController wires the client, registry and controller. An explicit
// --rulebook is selected before the first refresh so the default policy
// leaves it alone.
func (a *app) newController() *controller.Controller {
	gw := a.newClient()
	reg := rulebook.NewRegistry(gw,
		rulebook.WithPreferred(a.cfg.Rulebooks.Preferred),
		rulebook.WithLogger(a.log))
	ctrl := controller.New(gw, controller.WithLogger(a.log), controller.WithRegistry(reg))
	if a.rulebook != "" {
		ctrl.SelectRulebook(a.rulebook)
	}
	return ctrl
}

// requestContext bounds ctx by the configured request timeout.
func (a *app) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if d := a.cfg.Backend.RequestTimeout.Std(); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
