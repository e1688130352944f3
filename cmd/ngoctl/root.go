package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "NGO Connect command-line client",
		Long: `ngoctl drives the NGO Connect service from the terminal.

Log in once; the session is persisted (file, redis, or memory backend) and
restored by every later invocation until you log out. Admin commands approve
organizations and requirements; organization commands post and track
requirements.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(
		loginCmd(c),
		logoutCmd(c),
		whoamiCmd(c),
		registerCmd(c),
		ngosCmd(c),
		requirementsCmd(c),
		messagesCmd(c),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)
	return cmd
}
