package cli

import (
	"github.com/spf13/cobra"

	"github.com/neunenak/typst/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes the compiler over HTTP:

  GET  /healthz     build information
  POST /v1/align    evaluate a single align call (JSON request)
  POST /v1/compile  compile a TOML document (request body)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Addr
			}
			runner, err := c.newRunner(ctx, noCache, "server")
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Listening on %s", StyleHighlight.Render(addr))
			return server.New(runner, loggerFromContext(ctx)).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, defaults to TYPST_ADDR")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the compile cache")

	return cmd
}
