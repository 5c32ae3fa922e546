package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/brixbalance/internal/infra/httpapi"
	"github.com/aalvaropc/brixbalance/internal/infra/logger"
	"github.com/aalvaropc/brixbalance/internal/usecase"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var configPath string
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := loadSession(configPath)
			if err != nil {
				return err
			}
			opts.setupLogging(sess.root, sess.cfg.Log, false)

			listen := sess.cfg.Server.Addr
			if a := strings.TrimSpace(addr); a != "" {
				listen = a
			}

			log := logger.L()
			uc := usecase.NewSolveBalance(sess.cfg.Inputs, usecase.WithLogger(log))
			srv := httpapi.New(uc,
				httpapi.WithLogger(log),
				httpapi.WithPrecision(sess.cfg.Output.Precision),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return srv.ListenAndServe(ctx, listen, func(a net.Addr) {
				fmt.Fprintf(out, "Listening on http://%s\n", a)
			})
		},
	}

	c.Flags().StringVar(&configPath, "config", "", "Path to brix.yaml (optional; autodetected if omitted)")
	c.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return c
}
