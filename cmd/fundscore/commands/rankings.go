package commands

import (
	"fmt"

	"fundscore/internal"
	"fundscore/internal/domain"
	"fundscore/internal/repository"
	"fundscore/internal/util"

	"github.com/spf13/cobra"
)

var (
	rankingsCategory    string
	rankingsSubcategory string
	rankingsDate        string
)

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Print persisted peer-group rankings",
	Long: `Print the peer-group rankings for a score date, optionally
filtered by category and subcategory. Defaults to the latest score date.

Example:
  fundscore rankings --category Equity --subcategory "Large Cap"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(handler)

		ctx := cmd.Context()
		filter := repository.FundScoreListFilter{}
		if rankingsCategory != "" {
			category := domain.Category(rankingsCategory)
			filter.Category = &category
		}
		if rankingsSubcategory != "" {
			filter.Subcategory = &rankingsSubcategory
		}
		if rankingsDate != "" {
			scoreDate, err := util.ParseDate(rankingsDate)
			if err != nil {
				return err
			}
			filter.ScoreDate = &scoreDate
		} else {
			latest, err := handler.FundScoreRepository.LatestScoreDate(ctx)
			if err != nil {
				return err
			}
			if latest == nil {
				fmt.Println("no scores persisted yet, run `fundscore score` first")
				return nil
			}
			filter.ScoreDate = latest
		}

		records, err := handler.FundScoreRepository.List(ctx, filter)
		if err != nil {
			return err
		}
		internal.Pprint(records)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankingsCmd)
	rankingsCmd.Flags().StringVar(&rankingsCategory, "category", "", "filter by category (Equity|Debt|Hybrid)")
	rankingsCmd.Flags().StringVar(&rankingsSubcategory, "subcategory", "", "filter by subcategory")
	rankingsCmd.Flags().StringVar(&rankingsDate, "date", "", "score date YYYY-MM-DD (defaults to latest)")
}
