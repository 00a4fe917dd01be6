package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rowbin/csvmap/internal/web"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP validation server",
	Long: `Serve starts the CSV validation API:

  GET  /healthz       liveness probe
  POST /api/check     validate an uploaded file's header
  POST /api/inspect   summarize an uploaded file
  POST /api/convert   re-encode an uploaded file

The listen address and codec settings come from the environment; see
CSVMAP_SERVER_HOST, CSVMAP_SERVER_PORT, and CSVMAP_SEPARATOR.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := web.NewServer(cfg)
		return server.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
