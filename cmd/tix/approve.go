package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mboehm/tix/internal/client/api"
	"github.com/mboehm/tix/internal/config"
	"github.com/mboehm/tix/internal/paths"
	"github.com/mboehm/tix/internal/qr"
	"github.com/mboehm/tix/internal/session"
	"github.com/mboehm/tix/internal/store"
)

// approveCmd authorizes a browser login without entering the TUI. It takes
// the same payload the QR screen accepts, either the scanned URL or a bare
// request id.
func approveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <payload>",
		Short: "Approve a browser login from the command line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			dbPath, err := paths.DB()
			if err != nil {
				return err
			}
			st, err := store.OpenSQLite(ctx, dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = st.Close() }()

			requestID, err := qr.ParsePayload(args[0])
			if errors.Is(err, qr.ErrNotLoginQR) {
				// Not a URL; treat the argument as the id itself.
				requestID = args[0]
			}

			client := api.New(cfg, st, session.NewBus())
			if err := client.QR.Approve(ctx, requestID); err != nil {
				return fmt.Errorf("approval failed: %s", qr.Describe(err))
			}

			fmt.Println("Login approved. Finish signing in from the browser.")
			return nil
		},
	}
}
