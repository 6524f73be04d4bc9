package api

import (
	"time"

	"fundscore/internal/domain"
	"fundscore/internal/service"
	"fundscore/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BacktestRequest struct {
	Allocation []struct {
		FundID string  `json:"fundID"`
		Weight float64 `json:"weight"`
	} `json:"allocation"`
	Start           string  `json:"start"`
	End             string  `json:"end"`
	InitialAmount   float64 `json:"initialAmount"`
	RebalancePeriod string  `json:"rebalancePeriod"`
	BenchmarkName   *string `json:"benchmarkName"`
}

type ValuePointResponse struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type AttributionResponse struct {
	FundID         string   `json:"fundID"`
	Weight         float64  `json:"weight"`
	AbsoluteReturn *float64 `json:"absoluteReturn"`
	Contribution   float64  `json:"contribution"`
}

type BacktestResponse struct {
	TotalReturn      float64  `json:"totalReturn"`
	AnnualizedReturn float64  `json:"annualizedReturn"`
	Volatility       *float64 `json:"volatility"`
	Sharpe           *float64 `json:"sharpe"`
	MaxDrawdown      *float64 `json:"maxDrawdown"`
	Alpha            *float64 `json:"alpha"`
	Beta             *float64 `json:"beta"`
	TrackingError    *float64 `json:"trackingError"`
	UpCapture        *float64 `json:"upCapture"`
	DownCapture      *float64 `json:"downCapture"`

	ValueCurve     []ValuePointResponse  `json:"valueCurve"`
	BenchmarkCurve []ValuePointResponse  `json:"benchmarkCurve,omitempty"`
	Attribution    []AttributionResponse `json:"attribution"`
	ExcludedFunds  []string              `json:"excludedFunds,omitempty"`
}

func (m ApiHandler) backtest(c *gin.Context) {
	ctx := c.Request.Context()

	var requestBody BacktestRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	entries := make([]domain.AllocationEntry, 0, len(requestBody.Allocation))
	for _, a := range requestBody.Allocation {
		fundID, err := uuid.Parse(a.FundID)
		if err != nil {
			returnDomainError(domain.InvalidInputError{Field: "allocation", Reason: err.Error()}, c)
			return
		}
		entries = append(entries, domain.AllocationEntry{FundID: fundID, Weight: a.Weight})
	}

	start, err := util.ParseDate(requestBody.Start)
	if err != nil {
		returnDomainError(domain.InvalidInputError{Field: "start", Reason: err.Error()}, c)
		return
	}
	end, err := util.ParseDate(requestBody.End)
	if err != nil {
		returnDomainError(domain.InvalidInputError{Field: "end", Reason: err.Error()}, c)
		return
	}

	rebalancePeriod, err := domain.ParseRebalancePeriod(requestBody.RebalancePeriod)
	if err != nil {
		returnDomainError(err, c)
		return
	}

	result, err := m.BacktestService.Run(ctx, service.BacktestRequest{
		Allocation:      domain.Allocation{Entries: entries},
		Start:           start,
		End:             end,
		InitialAmount:   decimal.NewFromFloat(requestBody.InitialAmount),
		RebalancePeriod: rebalancePeriod,
		BenchmarkName:   requestBody.BenchmarkName,
	})
	if err != nil {
		returnDomainError(err, c)
		return
	}

	c.JSON(200, backtestResponseFrom(result))
}

func backtestResponseFrom(result *domain.BacktestResult) BacktestResponse {
	resp := BacktestResponse{
		TotalReturn:      result.Summary.TotalReturn,
		AnnualizedReturn: result.Summary.AnnualizedReturn,
		Volatility:       result.Summary.Volatility,
		Sharpe:           result.Summary.Sharpe,
		MaxDrawdown:      result.Summary.MaxDrawdown,
		Alpha:            result.Summary.Alpha,
		Beta:             result.Summary.Beta,
		TrackingError:    result.Summary.TrackingError,
		UpCapture:        result.Summary.UpCapture,
		DownCapture:      result.Summary.DownCapture,
	}

	for _, p := range result.ValueCurve {
		resp.ValueCurve = append(resp.ValueCurve, ValuePointResponse{
			Date:  p.Date.Format(time.DateOnly),
			Value: p.Value.InexactFloat64(),
		})
	}
	for _, p := range result.BenchmarkCurve {
		resp.BenchmarkCurve = append(resp.BenchmarkCurve, ValuePointResponse{
			Date:  p.Date.Format(time.DateOnly),
			Value: p.Value.InexactFloat64(),
		})
	}
	for _, attr := range result.Attribution {
		resp.Attribution = append(resp.Attribution, AttributionResponse{
			FundID:         attr.FundID.String(),
			Weight:         attr.Weight,
			AbsoluteReturn: attr.AbsoluteReturn,
			Contribution:   attr.Contribution,
		})
	}
	for _, id := range result.ExcludedFunds {
		resp.ExcludedFunds = append(resp.ExcludedFunds, id.String())
	}
	return resp
}
