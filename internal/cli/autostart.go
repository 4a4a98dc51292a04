package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
	"github.com/spf13/cobra"
)

func daemonAutostart() (*autostart.App, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}
	return &autostart.App{
		Name:        "remindd",
		DisplayName: "remindd daily reminder",
		Exec:        []string{execPath, "daemon"},
	}, nil
}

func addAutostart(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Start the reminder daemon at login.",
	}

	set := func(enable bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, err := daemonAutostart()
			if err != nil {
				return err
			}
			switch {
			case enable && !a.IsEnabled():
				if err := a.Enable(); err != nil {
					return fmt.Errorf("enable autostart: %w", err)
				}
			case !enable && a.IsEnabled():
				if err := a.Disable(); err != nil {
					return fmt.Errorf("disable autostart: %w", err)
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "autostart %s\n", state(a.IsEnabled()))
			return err
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "enable", Short: "Register the daemon to run at login.", RunE: set(true)},
		&cobra.Command{Use: "disable", Short: "Remove the login entry.", RunE: set(false)},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether the daemon starts at login.",
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := daemonAutostart()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "autostart %s\n", state(a.IsEnabled()))
				return err
			},
		},
	)
	topLevel.AddCommand(cmd)
}

func state(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
