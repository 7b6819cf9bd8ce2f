package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/plenario/internal/wire"
)

// ServeCmd returns the serve command, which runs the HTTP API.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API for the clerk desk and presiding officer panel",
		Long: `Serve the HTTP API.

The bind address comes from --bind, PLENARIO_BIND or http.bind in the config
file. Operators identify themselves with the X-Plenario-Actor header.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bind, _ := cmd.Flags().GetString("bind")
			if bind == "" {
				bind = wire.Config().HTTP.Bind
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return wire.API().Start(ctx, bind)
		},
	}

	cmd.Flags().String("bind", "", "Address to listen on (overrides config)")
	return cmd
}
