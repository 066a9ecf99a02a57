package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/boxworks/gobox/internal/logging"
)

func newAuthCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize a Box account interactively",
		Long: `Starts a local callback listener, prints the Box authorization URL
and waits for the browser redirect to complete the OAuth exchange.
The resulting tokens are persisted in the configured token store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newBoxClient(nil)
			if err != nil {
				return err
			}

			if err := client.StartServer(); err != nil {
				return fmt.Errorf("starting callback listener: %w", err)
			}
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.StopServer(stopCtx); err != nil {
					slog.Warn("Failed to stop callback listener", logging.Err(err))
				}
			}()

			conn := client.GetConnection(flagAccount)

			fmt.Printf("Open the following URL in your browser to authorize account %q:\n\n  %s\n\n", flagAccount, conn.AuthURL())
			fmt.Println("Waiting for authorization...")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			if err := conn.Ready(ctx); err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}

			user, err := conn.Me(ctx)
			if err != nil {
				return fmt.Errorf("authorized, but could not fetch user info: %w", err)
			}
			fmt.Printf("Authorized as %s <%s>\n", user.Name, user.Login)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "how long to wait for the browser redirect")
	return cmd
}
