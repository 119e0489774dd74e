package cli

import (
	"github.com/spf13/cobra"
)

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "xyarena",
		Short:         "Two-player xiehouyu quiz arena",
		Long:          "xyarena serves a head-to-head Chinese riddle (xiehouyu) quiz game and provides dataset exploration tools.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newExploreCmd(&configPath))

	return cmd
}
