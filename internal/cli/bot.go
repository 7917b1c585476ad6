package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ats/internal/domain/application"
	"ats/internal/usecase"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func BotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Drive technical applications through the pipeline",
	}

	cmd.AddCommand(botRunCmd())
	cmd.AddCommand(botAutoCmd())

	return cmd
}

func botRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a single bot pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.Bot.RunPass(cmd.Context(), botActor())
			if err != nil {
				return err
			}
			printPassResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func botAutoCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Run bot passes on a fixed interval until interrupted",
		Long: `Auto mode triggers one pass per tick. A tick that finds another pass
still holding the lock is reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			if !cmd.Flags().Changed("interval") {
				interval = c.Config.Bot.AutoInterval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bot auto mode every %s, Ctrl+C to stop\n", interval)
			return runAuto(ctx, interval, out, func(ctx context.Context) (usecase.BotPassResult, error) {
				return c.Bot.RunPass(ctx, botActor())
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Time between bot passes")

	return cmd
}

type passFunc func(ctx context.Context) (usecase.BotPassResult, error)

// runAuto runs pass immediately and then on every tick until ctx is done.
// Individual pass failures are reported and do not stop the loop.
func runAuto(ctx context.Context, interval time.Duration, out io.Writer, pass passFunc) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := pass(ctx)
		switch {
		case errors.Is(err, usecase.ErrBotPassInProgress):
			fmt.Fprintf(out, "%s previous pass still running\n", color.New(color.FgYellow).Sprint("!"))
		case err != nil:
			fmt.Fprintf(out, "%s pass failed: %v\n", color.New(color.FgRed).Sprint("✗"), err)
		default:
			printPassResult(out, res)
		}

		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func printPassResult(out io.Writer, res usecase.BotPassResult) {
	if res.ProcessedCount == 0 {
		fmt.Fprintln(out, "no technical applications to advance")
		return
	}
	fmt.Fprintf(out, "%s advanced %d application(s)\n", color.New(color.FgGreen).Sprint("✓"), res.ProcessedCount)
	for _, r := range res.Results {
		fmt.Fprintf(out, "  %s  %s (%s): %s -> %s\n", r.ApplicationID, r.ApplicantName, r.JobRole, r.OldStatus, statusColor(r.NewStatus))
	}
}

func statusColor(s application.Status) string {
	switch s {
	case application.StatusOffer:
		return color.New(color.FgGreen).Sprint(s)
	case application.StatusRejected:
		return color.New(color.FgRed).Sprint(s)
	default:
		return color.New(color.FgCyan).Sprint(s)
	}
}
