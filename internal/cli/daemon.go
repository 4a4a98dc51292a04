package cli

import (
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/remindd/internal/app"
)

func addDaemon(topLevel *cobra.Command, root *rootOptions) {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Keep the saved reminder armed and deliver it.",
		Long: `Reconciles the saved reminder with the permission grants on start and
every reconcile_interval, and posts a notification each time it fires.
Running the daemon next to the interactive UI can deliver a reminder twice.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			logger := app.NewLogger(cmd.ErrOrStderr(), root.cfg.Level())
			a, err := app.Build(root.cfg, app.WithLogger(logger))
			if err != nil {
				return err
			}
			defer a.Close()
			logger.Info("daemon started", "data_dir", root.cfg.DataDir, "interval", root.cfg.ReconcileInterval)
			return a.Daemon(cmd.Context())
		},
	}
	topLevel.AddCommand(cmd)
}
