package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.Migrate(cmd.Context())
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(res.Applied) == 0 {
				fmt.Fprintf(out, "%s schema up to date (%d already applied)\n", color.New(color.FgGreen).Sprint("✓"), res.Skipped)
				return nil
			}
			for _, v := range res.Applied {
				fmt.Fprintf(out, "%s applied V%d\n", color.New(color.FgGreen).Sprint("✓"), v)
			}
			return nil
		},
	}
}

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo job roles and applicants",
		Long:  `Seeds are idempotent and safe to run multiple times.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s seed data in place\n", color.New(color.FgGreen).Sprint("✓"))
			return nil
		},
	}
}
