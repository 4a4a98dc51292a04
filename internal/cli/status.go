package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/remindd/internal/app"
	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/permission"
)

func addStatus(topLevel *cobra.Command, root *rootOptions) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the saved reminder and the permission state.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runStatus(cmd.Context(), cmd.OutOrStdout(), root)
		},
	}
	topLevel.AddCommand(cmd)
}

func runStatus(ctx context.Context, out io.Writer, root *rootOptions) error {
	a, err := app.Build(root.cfg, app.WithLogger(app.NewLogger(io.Discard, root.cfg.Level())))
	if err != nil {
		return err
	}
	defer a.Close()

	setting, err := a.Store.GetReminder(ctx)
	if err != nil {
		return err
	}
	perms := permission.Query(ctx, a.Gateway)

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Reminder"), onOff(setting.Enabled))
	tbl.AddRow(bold.Sprint("Time"), setting.Clock())
	if setting.Enabled {
		for i, at := range model.PreviewTriggers(time.Now(), setting.Hour, setting.Minute, 3) {
			label := ""
			if i == 0 {
				label = bold.Sprint("Next")
			}
			tbl.AddRow(label, at.Format("Mon Jan 2 15:04"))
		}
	} else {
		tbl.AddRow(bold.Sprint("Next"), color.New(color.Faint).Sprint("-"))
	}
	tbl.AddRow(bold.Sprint("Notifications"), allowed(perms.Notifications))
	tbl.AddRow(bold.Sprint("Exact alarms"), allowed(perms.ExactAlarms))
	tbl.AddRow(bold.Sprint("Store"), fmt.Sprintf("%s (%s)", root.cfg.StoreBackend, root.cfg.DataDir))
	tbl.AddRow(bold.Sprint("Grants"), a.Gateway.Path())

	_, err = fmt.Fprintln(out, tbl)
	return err
}

func onOff(v bool) string {
	if v {
		return color.New(color.FgGreen).Sprint("on")
	}
	return color.New(color.Faint).Sprint("off")
}

func allowed(v bool) string {
	if v {
		return color.New(color.FgGreen).Sprint("allowed")
	}
	return color.New(color.FgRed).Sprint("not allowed")
}
