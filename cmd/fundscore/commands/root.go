package commands

import (
	"github.com/spf13/cobra"
)

var (
	scoringConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "fundscore",
	Short: "Mutual fund scoring, ranking and backtesting",
	Long: `fundscore computes period returns and risk metrics from NAV
history, rolls them into composite 0-100 scores, ranks funds within
their peer groups and serves the results over HTTP.

Examples:
  fundscore api --port 3009
  fundscore score --date 2026-08-29
  fundscore seed --funds funds.csv --navs navs.csv
  fundscore schedule`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&scoringConfigPath, "scoring-config", "", "path to a scoring weights yaml (defaults to built-in weights)")
}
