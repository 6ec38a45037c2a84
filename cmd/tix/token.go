package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mboehm/tix/internal/paths"
	"github.com/mboehm/tix/internal/store"
)

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Show the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dbPath, err := paths.DB()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			st, err := store.OpenSQLite(ctx, dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() {
				_ = st.Close()
			}()

			token, err := st.Token(ctx)
			if err != nil {
				if errors.Is(err, store.ErrNoToken) {
					fmt.Println("No token stored. Run tix and sign in first.")
					return nil
				}
				return fmt.Errorf("failed to get token: %w", err)
			}

			fmt.Printf("Token: %s\n", token)

			first, last, err := st.SignInTimes(ctx)
			if err != nil {
				return fmt.Errorf("failed to get sign-in times: %w", err)
			}
			if !first.IsZero() {
				fmt.Printf("First sign-in: %s\n", first.Format(time.RFC3339))
			}
			if !last.IsZero() {
				fmt.Printf("Last sign-in:  %s\n", last.Format(time.RFC3339))
			}

			return nil
		},
	}
}
