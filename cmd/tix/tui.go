package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/mboehm/tix/internal/biometric"
	"github.com/mboehm/tix/internal/client/api"
	"github.com/mboehm/tix/internal/config"
	"github.com/mboehm/tix/internal/paths"
	"github.com/mboehm/tix/internal/session"
	"github.com/mboehm/tix/internal/store"
	"github.com/mboehm/tix/internal/tui"
	"github.com/mboehm/tix/internal/version"
	"github.com/mboehm/tix/internal/xslog"
)

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	dir, err := paths.EnsureDir()
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logFile, err := os.OpenFile(filepath.Join(dir, "tix.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	// Development builds log at debug unless the env says otherwise.
	level := xslog.FromEnv()
	if os.Getenv(xslog.EnvKey) == "" && version.IsDevelopment(version.Get()) {
		level = xslog.LevelDebug
	}
	logger := xslog.NewLogger(logFile, level)

	dbPath, err := paths.DB()
	if err != nil {
		return err
	}
	st, err := store.OpenSQLite(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = st.Close() }()

	clientID, err := st.ClientID(ctx)
	if err != nil {
		return fmt.Errorf("failed to load client id: %w", err)
	}

	bus := session.NewBus()
	client := api.New(cfg, st, bus,
		api.WithLogger(logger),
		api.WithClientID(clientID),
	)
	checker := session.NewChecker(st, func(ctx context.Context) error {
		_, err := client.Auth.Me(ctx)
		return err
	}, logger)

	hasToken, err := store.HasToken(ctx, st)
	if err != nil {
		return fmt.Errorf("failed to check stored token: %w", err)
	}

	deps := tui.Deps{
		Ctx:     ctx,
		Logger:  logger,
		Store:   st,
		API:     client,
		Bus:     bus,
		Gate:    biometric.NewCommandGate(cfg.LocalAuthCommand),
		Checker: checker,
	}
	model := tui.New(deps, hasToken)

	p := tea.NewProgram(&model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}
