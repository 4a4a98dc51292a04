package cli

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/remindd/internal/app"
	"github.com/sandeepkv93/remindd/internal/calendar"
)

func addExport(topLevel *cobra.Command, root *rootOptions) {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the saved reminder as an iCalendar file.",
		Example: `
remindd export > reminder.ics
remindd export -o reminder.ics
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, err := app.Build(root.cfg, app.WithLogger(app.NewLogger(io.Discard, root.cfg.Level())))
			if err != nil {
				return err
			}
			defer a.Close()

			setting, err := a.Store.GetReminder(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return calendar.ExportICS(w, setting, time.Now())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	topLevel.AddCommand(cmd)
}
