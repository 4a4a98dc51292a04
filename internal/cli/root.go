// Package cli holds the remindd cobra commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/remindd/internal/config"
)

type rootOptions struct {
	configPath string
	cfg        config.Config
}

func New() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "remindd",
		Short:         "A daily reminder that negotiates its own permissions.",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runTUI(cmd.Context(), opts.cfg)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $DATA_DIR/config.yaml)")

	AddCommands(cmd, opts)
	return cmd
}

func AddCommands(topLevel *cobra.Command, opts *rootOptions) {
	addSet(topLevel, opts)
	addStatus(topLevel, opts)
	addDaemon(topLevel, opts)
	addExport(topLevel, opts)
	addAutostart(topLevel)
}
