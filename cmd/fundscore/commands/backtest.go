package commands

import (
	"fmt"
	"strconv"
	"strings"

	"fundscore/internal"
	"fundscore/internal/domain"
	"fundscore/internal/logger"
	"fundscore/internal/service"
	"fundscore/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	backtestFunds     []string
	backtestStart     string
	backtestEnd       string
	backtestAmount    float64
	backtestRebalance string
	backtestBenchmark string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Simulate a weighted fund portfolio",
	Long: `Simulate holding a weighted basket of funds over a date range
and print the performance summary and per-fund attribution.

Example:
  fundscore backtest \
    --fund 7cbd2c6a-...:0.6 --fund 91e01d0f-...:0.4 \
    --start 2023-01-01 --end 2026-01-01 \
    --amount 100000 --rebalance quarterly --benchmark "NIFTY 50"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := make([]domain.AllocationEntry, 0, len(backtestFunds))
		for _, raw := range backtestFunds {
			fundID, weight, err := parseFundWeight(raw)
			if err != nil {
				return err
			}
			entries = append(entries, domain.AllocationEntry{FundID: fundID, Weight: weight})
		}

		start, err := util.ParseDate(backtestStart)
		if err != nil {
			return err
		}
		end, err := util.ParseDate(backtestEnd)
		if err != nil {
			return err
		}
		rebalancePeriod, err := domain.ParseRebalancePeriod(backtestRebalance)
		if err != nil {
			return err
		}

		req := service.BacktestRequest{
			Allocation:      domain.Allocation{Entries: entries},
			Start:           start,
			End:             end,
			InitialAmount:   decimal.NewFromFloat(backtestAmount),
			RebalancePeriod: rebalancePeriod,
		}
		if backtestBenchmark != "" {
			req.BenchmarkName = &backtestBenchmark
		}

		handler, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(handler)

		ctx := logger.NewContext(cmd.Context(), handler.Logger)
		result, err := handler.BacktestService.Run(ctx, req)
		if err != nil {
			return err
		}

		internal.Pprint(result.Summary)
		internal.Pprint(result.Attribution)
		for _, id := range result.ExcludedFunds {
			fmt.Printf("excluded (no nav data in range): %s\n", id)
		}

		return nil
	},
}

func parseFundWeight(raw string) (uuid.UUID, float64, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return uuid.Nil, 0, fmt.Errorf("invalid --fund %q, expected fundID:weight", raw)
	}
	fundID, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("invalid fund id %q: %w", parts[0], err)
	}
	weight, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("invalid weight %q: %w", parts[1], err)
	}
	return fundID, weight, nil
}

func init() {
	rootCmd.AddCommand(backtestCmd)
	backtestCmd.Flags().StringArrayVar(&backtestFunds, "fund", nil, "allocation entry as fundID:weight (repeatable)")
	backtestCmd.Flags().StringVar(&backtestStart, "start", "", "start date YYYY-MM-DD")
	backtestCmd.Flags().StringVar(&backtestEnd, "end", "", "end date YYYY-MM-DD")
	backtestCmd.Flags().Float64Var(&backtestAmount, "amount", 100000, "initial investment amount")
	backtestCmd.Flags().StringVar(&backtestRebalance, "rebalance", "none", "rebalance period (none|monthly|quarterly|annually)")
	backtestCmd.Flags().StringVar(&backtestBenchmark, "benchmark", "", "benchmark name for relative metrics")
}
