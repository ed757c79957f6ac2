package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	var writePath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration, optionally saving it as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, a, writePath)
		},
	}

	cmd.Flags().StringVar(&writePath, "write", "", "save the effective configuration to this YAML file")

	return cmd
}

func runConfig(cmd *cobra.Command, a *app, writePath string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, a.cfg.String())
	fmt.Fprintf(out, "  Log level: %s\n", a.cfg.Logging.Level)

	if writePath == "" {
		return nil
	}

	if a.dryRun {
		fmt.Fprintf(out, "\n📝 Would save config to: %s\n", writePath)
		return nil
	}

	if err := a.cfg.SaveConfig(writePath); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n✅ Saved config to: %s\n", writePath)

	return nil
}
