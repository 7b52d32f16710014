package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dotwalk/pkg/server"
)

// serveCommand runs the HTTP render server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve the render pipeline over HTTP.

  POST /v1/dot      graph document in, DOT out
  POST /v1/render   graph document in, SVG or PNG out
  GET  /healthz     build information

Render options are query parameters (format, engine, fontname, dark,
no_node_labels, ...). Layouts are cached in the configured cache.`,
		Example: `  dotwalk serve --addr :9090
  curl --data-binary @graph.json 'localhost:9090/v1/render?format=svg&dark=1'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger,
				server.WithTTL(c.Config.Cache.TTL.Duration),
				server.WithMaxBodyBytes(maxBody),
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "largest accepted graph document in bytes")
	return cmd
}
