package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"fundscore/api"
	"fundscore/internal/db/models/postgres/public/model"
	"fundscore/internal/util"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	seedFundsCsv      string
	seedNavsCsv       string
	seedBenchmarksCsv string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import funds, NAV history and benchmark prices from CSV",
	Long: `Import reference data from CSV files. Funds are upserted by
scheme code; NAV and benchmark rows are upserted by (fund, date).

Fund columns:      scheme_code,name,category,subcategory,benchmark,expense_ratio,inception_date,aum_crores
NAV columns:       scheme_code,date,nav
Benchmark columns: name,date,value

Example:
  fundscore seed --funds funds.csv --navs navs.csv --benchmarks nifty.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedFundsCsv == "" && seedNavsCsv == "" && seedBenchmarksCsv == "" {
			return fmt.Errorf("nothing to seed, pass --funds, --navs or --benchmarks")
		}

		handler, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(handler)

		ctx := cmd.Context()
		if seedFundsCsv != "" {
			if err := seedFunds(ctx, handler, seedFundsCsv); err != nil {
				return err
			}
		}
		if seedNavsCsv != "" {
			if err := seedNavs(ctx, handler, seedNavsCsv); err != nil {
				return err
			}
		}
		if seedBenchmarksCsv != "" {
			if err := seedBenchmarks(ctx, handler, seedBenchmarksCsv); err != nil {
				return err
			}
		}

		return nil
	},
}

func seedFunds(ctx context.Context, handler *api.ApiHandler, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	type row struct {
		SchemeCode    string   `csv:"scheme_code"`
		Name          string   `csv:"name"`
		Category      string   `csv:"category"`
		Subcategory   string   `csv:"subcategory"`
		Benchmark     string   `csv:"benchmark"`
		ExpenseRatio  *float64 `csv:"expense_ratio"`
		InceptionDate string   `csv:"inception_date"`
		AumCrores     *float64 `csv:"aum_crores"`
	}
	rows := []row{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for _, r := range rows {
		m := model.Fund{
			SchemeCode:   r.SchemeCode,
			Name:         r.Name,
			Category:     r.Category,
			Subcategory:  r.Subcategory,
			ExpenseRatio: r.ExpenseRatio,
			AumCrores:    r.AumCrores,
		}
		if r.Benchmark != "" {
			m.BenchmarkName = &r.Benchmark
		}
		if r.InceptionDate != "" {
			inception, err := util.ParseDate(r.InceptionDate)
			if err != nil {
				return fmt.Errorf("fund %s: %w", r.SchemeCode, err)
			}
			m.InceptionDate = &inception
		}
		if _, err := handler.FundRepository.Add(ctx, m); err != nil {
			return err
		}
	}
	fmt.Printf("seeded %d funds from %s\n", len(rows), path)

	return nil
}

func seedNavs(ctx context.Context, handler *api.ApiHandler, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	type row struct {
		SchemeCode string  `csv:"scheme_code"`
		Date       string  `csv:"date"`
		Nav        float64 `csv:"nav"`
	}
	rows := []row{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	models := []model.NavHistory{}
	fundIDs := map[string]uuid.UUID{}
	for _, r := range rows {
		fundID, ok := fundIDs[r.SchemeCode]
		if !ok {
			found, err := handler.FundRepository.GetBySchemeCode(ctx, r.SchemeCode)
			if err != nil {
				return fmt.Errorf("nav row references unknown scheme %s: %w", r.SchemeCode, err)
			}
			fundID = found.ID
			fundIDs[r.SchemeCode] = fundID
		}
		date, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return fmt.Errorf("nav row for %s: %w", r.SchemeCode, err)
		}
		models = append(models, model.NavHistory{
			FundID: fundID,
			Date:   date,
			Nav:    decimal.NewFromFloat(r.Nav),
		})
	}
	if err := handler.NavRepository.Add(ctx, models); err != nil {
		return err
	}
	fmt.Printf("seeded %d nav points from %s\n", len(models), path)

	return nil
}

func seedBenchmarks(ctx context.Context, handler *api.ApiHandler, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	type row struct {
		Name  string  `csv:"name"`
		Date  string  `csv:"date"`
		Value float64 `csv:"value"`
	}
	rows := []row{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	models := []model.BenchmarkPrice{}
	for _, r := range rows {
		date, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return fmt.Errorf("benchmark row for %s: %w", r.Name, err)
		}
		models = append(models, model.BenchmarkPrice{
			BenchmarkName: r.Name,
			Date:          date,
			Value:         decimal.NewFromFloat(r.Value),
		})
	}
	if err := handler.BenchmarkRepository.Add(ctx, models); err != nil {
		return err
	}
	fmt.Printf("seeded %d benchmark points from %s\n", len(models), path)

	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedFundsCsv, "funds", "", "fund attributes csv")
	seedCmd.Flags().StringVar(&seedNavsCsv, "navs", "", "nav history csv")
	seedCmd.Flags().StringVar(&seedBenchmarksCsv, "benchmarks", "", "benchmark prices csv")
}
