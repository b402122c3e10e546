package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/api"
	"github.com/paw-chain/pawswap/app"
)

const flagRateLimit = "rate-limit"

// ServeCmd serves the read-only HTTP API until interrupted.
func ServeCmd(n *node) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only HTTP API and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := n.openApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			cfg := api.DefaultConfig()
			cfg.Address = n.cfg.API.Address
			if cfg.RateLimitRPS, err = cmd.Flags().GetInt(flagRateLimit); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.NewServer(a, n.logger, cfg).Start(ctx)
		},
	}
	cmd.Flags().String("api.address", "", "listen address of the API")
	cmd.Flags().Int(flagRateLimit, api.DefaultConfig().RateLimitRPS, "requests per second allowed per client IP; 0 disables limiting")
	if err := n.v.BindPFlag(app.KeyAPIAddress, cmd.Flags().Lookup("api.address")); err != nil {
		panic(err)
	}
	return cmd
}
