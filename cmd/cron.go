package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"eyewear.GO/cron"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		deps, err := buildDeps(ctx)
		if err != nil {
			return err
		}
		cronDeps := &cron.Deps{Catalog: deps.Catalog, Indexer: deps.Indexer}

		if jobName != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Running cron job: %s\n", jobName)
			return cron.RunOnce(ctx, jobName, cronDeps)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Starting cron scheduler (%v)...\n", cron.Names())
		c, err := cron.StartCron(ctx, cronDeps)
		if err != nil {
			return err
		}
		defer c.Stop()
		fmt.Fprintln(cmd.OutOrStdout(), "Cron scheduler started. Press Ctrl+C to exit.")
		<-ctx.Done()
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
