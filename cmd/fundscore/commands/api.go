package commands

import (
	"github.com/spf13/cobra"
)

var apiPort int

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Start the REST API.

Endpoints:
  POST /score     - compute a composite score for one fund
  GET  /rankings  - peer-group rankings for a score date
  POST /backtest  - simulate a weighted fund portfolio
  POST /screen    - filter funds with a metric expression

Example:
  fundscore api --port 3009`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(handler)

		return handler.StartApi(apiPort)
	},
}

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.Flags().IntVar(&apiPort, "port", 3009, "port to listen on")
}
