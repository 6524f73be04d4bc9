package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fundscore/internal/scheduler"

	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the background job scheduler",
	Long: `Run the cron scheduler in the foreground. The daily scoring job
recomputes all fund scores at 01:30 UTC, after the previous day's NAVs
have been published. Stop with ctrl-c.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(handler)

		s := scheduler.New(handler.Logger)
		if err := s.AddJob(scheduler.NewDailyScoringJob(handler.ScoringService)); err != nil {
			return fmt.Errorf("failed to register scoring job: %w", err)
		}
		s.Start()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop

		s.Stop()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
