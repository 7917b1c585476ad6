package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func BackfillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Data repair commands",
		Long:  `One-time data repairs. Safe to run multiple times.`,
	}

	cmd.AddCommand(backfillExperienceCmd())

	return cmd
}

func backfillExperienceCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "experience",
		Short: "Set missing experience to 0 so the bot can process legacy applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.Maintenance.BackfillMissingExperience(cmd.Context(), dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Found == 0 {
				fmt.Fprintln(out, "No applications with missing experience.")
				return nil
			}
			fmt.Fprintf(out, "Found %d application(s) with missing experience.\n", res.Found)
			if res.DryRun {
				fmt.Fprintln(out, "\n[DRY RUN] No changes made. Run without --dry-run to apply.")
				return nil
			}
			fmt.Fprintf(out, "%s updated %d, remaining %d\n", color.New(color.FgGreen).Sprint("✓"), res.Updated, res.Remaining)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report without making changes")

	return cmd
}
