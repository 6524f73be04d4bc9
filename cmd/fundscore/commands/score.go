package commands

import (
	"time"

	"fundscore/internal"
	"fundscore/internal/logger"
	"fundscore/internal/util"

	"github.com/spf13/cobra"
)

var scoreDate string

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Run a scoring batch across all funds",
	Long: `Compute metrics, scores and peer-group rankings for every fund
and persist the results. Funds with too little NAV history are skipped.

Example:
  fundscore score --date 2026-08-29`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(handler)

		asOf := time.Now().UTC().Truncate(24 * time.Hour)
		if scoreDate != "" {
			asOf, err = util.ParseDate(scoreDate)
			if err != nil {
				return err
			}
		}

		ctx := logger.NewContext(cmd.Context(), handler.Logger)
		summary, err := handler.ScoringService.ScoreBatch(ctx, asOf)
		if err != nil {
			return err
		}
		internal.Pprint(summary)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVar(&scoreDate, "date", "", "score date YYYY-MM-DD (defaults to today)")
}
