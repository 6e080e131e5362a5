package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snarl/pkg/metrics"
	"github.com/matzehuels/snarl/pkg/server"
)

// serveCommand creates the "serve" command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve boards over an HTTP API",
		Long: `Serve exposes the configured board store over HTTP. Boards can be
created, mutated, and rendered through the /api/boards endpoints, and
Prometheus metrics are available at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			st, err := newStore(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
			}
			defer st.Close()

			metrics.Register()

			srv := server.New(st, c.Logger)
			return srv.Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (defaults to config, then :8080)")
	return cmd
}
