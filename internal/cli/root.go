package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/infra/configfinder"
	"github.com/aalvaropc/brixbalance/internal/infra/fsworkspace"
	"github.com/aalvaropc/brixbalance/internal/infra/logger"
	"github.com/aalvaropc/brixbalance/internal/ui/tui"
	"github.com/aalvaropc/brixbalance/internal/usecase"
)

type rootOptions struct {
	debug   bool
	cleanup func() error
}

// setupLogging opens the log described by the log section of brix.yaml, with
// a relative dir resolved against root. Without a config root it only logs
// when --debug is set, and then under the working directory.
func (o *rootOptions) setupLogging(root string, settings domain.LogConfig, always bool) {
	if o.cleanup != nil {
		return
	}
	if root == "" {
		if !always && !o.debug {
			return
		}
		root = workingDir()
	}

	cfg, err := logger.FromSettings(root, settings, o.debug)
	if err != nil {
		return
	}
	cleanup, err := logger.Setup(cfg)
	if err == nil {
		o.cleanup = cleanup
	}
}

func (o *rootOptions) close() {
	if o.cleanup != nil {
		_ = o.cleanup()
		o.cleanup = nil
	}
}

func Execute() {
	opts := &rootOptions{}
	cmd := newRootCmd(opts)
	err := cmd.Execute()
	opts.close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "brixbalance",
		Short:        "brixbalance: sugar to add to reach a target °Brix",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			sess, err := loadSession(configPath)
			if err != nil {
				return err
			}
			opts.setupLogging(sess.root, sess.cfg.Log, true)

			uc := usecase.NewSolveBalance(sess.cfg.Inputs, usecase.WithLogger(logger.L()))

			deps := tui.Deps{
				Solver:            uc,
				Precision:         sess.cfg.Output.Precision,
				ConfigPath:        sess.path,
				ConfigLocator:     configfinder.NewFinder(),
				ConfigInitializer: fsworkspace.NewInitializer(),
				Logger:            logger.L(),
				LogPath:           logger.Path(),
				Debug:             opts.debug,
			}

			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log at debug level, overriding log.level")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to brix.yaml (optional; autodetected if omitted)")

	cmd.AddCommand(
		solveCmd(opts),
		optionsCmd(opts),
		initCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)
	return cmd
}
