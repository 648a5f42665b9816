package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell/httpapi"
	"github.com/iw2rmb/inkwell/internal/logx"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projects directory for download and upload",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logx.Ctx(cmd.Context())
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.HTTP.Addr
			}
			if addr == "" {
				addr = ":8000"
			}
			st, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			srv := httpapi.NewServer(httpapi.Config{Addr: addr}, st)
			return httpapi.ListenAndServe(ctx, addr, srv.Handler())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")
	return cmd
}
