package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskboard/internal/mcp"
	"github.com/sandeepkv93/taskboard/internal/web"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tasks as a local JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx, cmd, opts, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			if !opts.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			if addr == "" {
				addr = a.cfg.Web.Addr
			}
			srv := web.NewServer(a.store, a.logger, web.WithLimits(a.cfg.UI.RecentLimit, a.cfg.UI.PreviewLimit))
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config web.addr)")
	return cmd
}

func newMCPCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tasks as MCP tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, so logs always go to a file.
			a, err := openApp(cmd.Context(), cmd, opts, appOptions{logToFile: true})
			if err != nil {
				return err
			}
			defer a.Close()

			a.logger.Info().Msg("serving mcp on stdio")
			return mcp.Serve(mcp.NewServer(a.store, time.Now))
		},
	}
}
