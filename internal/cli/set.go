package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/remindd/internal/app"
	"github.com/sandeepkv93/remindd/internal/commands"
	"github.com/sandeepkv93/remindd/internal/controller"
	"github.com/sandeepkv93/remindd/internal/permission"
)

var ErrPermissionRequired = errors.New("permission required")

type setOptions struct {
	at  string
	on  bool
	off bool
	yes bool
}

func addSet(topLevel *cobra.Command, root *rootOptions) {
	so := &setOptions{}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the daily reminder and save it.",
		Example: `
remindd set --at 07:30 --on
remindd set --off
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runSet(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), root, so)
		},
	}
	cmd.Flags().StringVar(&so.at, "at", "", "reminder time as HH:MM")
	cmd.Flags().BoolVar(&so.on, "on", false, "enable the reminder")
	cmd.Flags().BoolVar(&so.off, "off", false, "disable the reminder")
	cmd.Flags().BoolVarP(&so.yes, "yes", "y", false, "answer yes to permission prompts")
	cmd.MarkFlagsMutuallyExclusive("on", "off")

	topLevel.AddCommand(cmd)
}

// script turns the flags into palette commands, ending with save.
func (so *setOptions) script() []string {
	var lines []string
	if so.at != "" {
		lines = append(lines, "at "+so.at)
	}
	switch {
	case so.on:
		lines = append(lines, "on")
	case so.off:
		lines = append(lines, "off")
	}
	return append(lines, "save")
}

func runSet(ctx context.Context, in io.Reader, out io.Writer, root *rootOptions, so *setOptions) error {
	logger := app.NewLogger(io.Discard, root.cfg.Level())
	a, err := app.Build(root.cfg,
		app.WithLogger(logger),
		app.WithPrompter(terminalPrompter(in, out, so.yes)),
	)
	if err != nil {
		return err
	}
	defer a.Close()
	a.Start()

	dispatch := func(ev controller.Event) error { return a.Controller.Handle(ctx, ev) }
	if err := dispatch(controller.Load{}); err != nil {
		return err
	}
	for _, line := range so.script() {
		parsed, err := commands.Parse(line)
		if err != nil {
			return err
		}
		if _, err := commands.Execute(parsed, dispatch); err != nil {
			return err
		}
	}

	saved := false
	x := a.Executor(ctx)
	x.OnBack = func() { saved = true }
	if err := x.Drain(ctx, a.Controller.Effects()); err != nil {
		return err
	}

	st := a.Controller.State()
	switch st.Dialog {
	case controller.DialogNotificationRequired:
		return fmt.Errorf("%w: notifications are not allowed; allow them in %s", ErrPermissionRequired, a.Gateway.Path())
	case controller.DialogExactAlarmRequired:
		return fmt.Errorf("%w: exact alarms are not allowed; allow them in %s", ErrPermissionRequired, a.Gateway.Path())
	}
	if st.Err != nil {
		return st.Err
	}
	if !saved {
		return errors.New("reminder was not saved")
	}

	mark := color.New(color.FgGreen).Sprint("saved")
	_, _ = fmt.Fprintf(out, "%s %s\n", mark, st.Reminder)
	if st.Reminder.Enabled {
		_, _ = fmt.Fprintf(out, "next reminder %s\n", st.Reminder.NextTrigger(time.Now()).Format("Mon Jan 2 15:04"))
	}
	return nil
}

func terminalPrompter(in io.Reader, out io.Writer, yes bool) permission.Prompter {
	reader := bufio.NewReader(in)
	return permission.PrompterFunc(func(ctx context.Context, kind permission.Kind) (bool, error) {
		if yes {
			return true, nil
		}
		what := "send notifications"
		if kind == permission.KindExactAlarms {
			what = "schedule exact alarms"
		}
		_, _ = fmt.Fprintf(out, "Allow remindd to %s? [y/N] ", what)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	})
}
