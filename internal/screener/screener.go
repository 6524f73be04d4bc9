package screener

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fundscore/internal/domain"

	"github.com/maja42/goval"
)

// Row is one fund's screening context: static attributes, computed
// metrics, and the latest score record when one exists.
type Row struct {
	Fund    domain.Fund
	Metrics domain.MetricSet
	Score   *domain.ScoreRecord
}

// errValueUnavailable marks an expression that referenced a metric the
// fund doesn't have. The row is dropped from the result set; the screen
// as a whole still succeeds.
var errValueUnavailable = errors.New("value unavailable for fund")

// Filter evaluates a boolean expression, e.g.
//
//	return1Y() > 12 && expenseRatio() < 1.0 && quartile() <= 2
//
// against every row and returns the rows that pass. A malformed
// expression fails the whole screen; a fund missing a referenced value
// simply doesn't pass.
func Filter(expression string, rows []Row) ([]Row, error) {
	if expression == "" {
		return nil, domain.InvalidInputError{Field: "expression", Reason: "empty"}
	}

	out := []Row{}
	for _, row := range rows {
		pass, err := Evaluate(expression, row)
		if errors.Is(err, errValueUnavailable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if pass {
			out = append(out, row)
		}
	}
	return out, nil
}

// Evaluate runs the expression against a single row.
func Evaluate(expression string, row Row) (bool, error) {
	eval := goval.NewEvaluator()
	result, err := eval.Evaluate(expression, nil, constructFunctionMap(row))
	if err != nil {
		// the evaluator may rewrap function errors without %w
		if errors.Is(err, errValueUnavailable) || strings.Contains(err.Error(), errValueUnavailable.Error()) {
			return false, errValueUnavailable
		}
		return false, domain.InvalidInputError{Field: "expression", Reason: err.Error()}
	}

	pass, ok := result.(bool)
	if !ok {
		return false, domain.InvalidInputError{Field: "expression", Reason: fmt.Sprintf("expected a boolean result, got %T", result)}
	}
	return pass, nil
}

func constructFunctionMap(row Row) map[string]goval.ExpressionFunction {
	metricFn := func(v *float64) goval.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			if v == nil || math.IsNaN(*v) {
				return nil, errValueUnavailable
			}
			return *v, nil
		}
	}
	periodFn := func(p domain.Period) goval.ExpressionFunction {
		return metricFn(row.Metrics.PeriodReturn(p))
	}

	functions := map[string]goval.ExpressionFunction{
		"return3M":  periodFn(domain.Period3M),
		"return6M":  periodFn(domain.Period6M),
		"return1Y":  periodFn(domain.Period1Y),
		"return3Y":  periodFn(domain.Period3Y),
		"return5Y":  periodFn(domain.Period5Y),
		"returnYTD": periodFn(domain.PeriodYTD),

		"volatility":  metricFn(row.Metrics.Volatility),
		"sharpe":      metricFn(row.Metrics.Sharpe),
		"sortino":     metricFn(row.Metrics.Sortino),
		"maxDrawdown": metricFn(row.Metrics.MaxDrawdown),
		"beta":        metricFn(row.Metrics.Beta),

		"expenseRatio":  metricFn(row.Fund.ExpenseRatio),
		"aum":           metricFn(row.Fund.AumCrores),
		"minInvestment": metricFn(row.Fund.MinInvestment),
		"exitLoad":      metricFn(row.Fund.ExitLoad),

		"trackRecordYears": func(args ...interface{}) (interface{}, error) {
			years := row.Fund.TrackRecordYears(time.Now().UTC())
			if years == nil {
				return nil, errValueUnavailable
			}
			return *years, nil
		},
		"category": func(args ...interface{}) (interface{}, error) {
			return string(row.Fund.Category), nil
		},
		"subcategory": func(args ...interface{}) (interface{}, error) {
			return row.Fund.Subcategory, nil
		},
	}

	scoreFloat := func(get func(domain.ScoreRecord) float64) goval.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			if row.Score == nil {
				return nil, errValueUnavailable
			}
			return get(*row.Score), nil
		}
	}
	functions["total"] = scoreFloat(func(r domain.ScoreRecord) float64 { return r.Total })
	functions["percentile"] = scoreFloat(func(r domain.ScoreRecord) float64 { return r.Percentile })
	functions["quartile"] = scoreFloat(func(r domain.ScoreRecord) float64 { return float64(r.Quartile) })
	functions["rank"] = scoreFloat(func(r domain.ScoreRecord) float64 { return float64(r.Rank) })
	functions["recommendation"] = func(args ...interface{}) (interface{}, error) {
		if row.Score == nil {
			return nil, errValueUnavailable
		}
		return string(row.Score.Recommendation), nil
	}

	return functions
}
