package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/infra/fsworkspace"
	"github.com/aalvaropc/brixbalance/internal/infra/logger"
	"github.com/aalvaropc/brixbalance/internal/usecase"
)

func initCmd(opts *rootOptions) *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a default brix.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			uc := usecase.NewInitConfig(fsworkspace.NewInitializer())
			written, err := uc.Execute(root, force)
			if err != nil {
				return err
			}

			opts.setupLogging(root, domain.DefaultConfig().Log, false)
			logger.L().Info("config.initialized", "path", written, "force", force)

			fmt.Fprintf(cmd.OutOrStdout(), "Config ready: %s\n", written)
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", ".", "Directory to write brix.yaml into")
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing brix.yaml")
	return c
}
