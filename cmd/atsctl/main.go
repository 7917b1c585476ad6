package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ats/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "atsctl",
		Short: "Operate the application tracking service",
		Long: `atsctl runs database maintenance and drives the bot role outside the
HTTP server, including the periodic auto mode.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.BotCmd())
	rootCmd.AddCommand(cli.BackfillCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
