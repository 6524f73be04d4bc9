package api

import (
	"time"

	"fundscore/internal/domain"
	"fundscore/internal/util"

	"github.com/gin-gonic/gin"
)

type ScreenRequest struct {
	Expression string  `json:"expression"`
	AsOf       *string `json:"asOf"`
}

type ScreenRow struct {
	FundID      string `json:"fundID"`
	SchemeCode  string `json:"schemeCode"`
	Name        string `json:"name"`
	PeerGroup   string `json:"peerGroup"`

	Return1Y    *float64 `json:"return1Y"`
	Return3Y    *float64 `json:"return3Y"`
	Volatility  *float64 `json:"volatility"`
	Sharpe      *float64 `json:"sharpe"`
	MaxDrawdown *float64 `json:"maxDrawdown"`

	Total          *float64 `json:"total,omitempty"`
	Quartile       *int     `json:"quartile,omitempty"`
	Recommendation *string  `json:"recommendation,omitempty"`
}

type ScreenResponse struct {
	Matches []ScreenRow `json:"matches"`
}

func (m ApiHandler) screen(c *gin.Context) {
	ctx := c.Request.Context()

	var requestBody ScreenRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	asOf := time.Now().UTC()
	if requestBody.AsOf != nil {
		parsed, err := util.ParseDate(*requestBody.AsOf)
		if err != nil {
			returnDomainError(domain.InvalidInputError{Field: "asOf", Reason: err.Error()}, c)
			return
		}
		asOf = parsed
	}

	rows, err := m.ScreenerService.Screen(ctx, requestBody.Expression, asOf)
	if err != nil {
		returnDomainError(err, c)
		return
	}

	matches := make([]ScreenRow, 0, len(rows))
	for _, row := range rows {
		match := ScreenRow{
			FundID:      row.Fund.ID.String(),
			SchemeCode:  row.Fund.SchemeCode,
			Name:        row.Fund.Name,
			PeerGroup:   row.Fund.PeerGroup().String(),
			Return1Y:    row.Metrics.PeriodReturn(domain.Period1Y),
			Return3Y:    row.Metrics.PeriodReturn(domain.Period3Y),
			Volatility:  row.Metrics.Volatility,
			Sharpe:      row.Metrics.Sharpe,
			MaxDrawdown: row.Metrics.MaxDrawdown,
		}
		if row.Score != nil {
			total := row.Score.Total
			quartile := row.Score.Quartile
			recommendation := string(row.Score.Recommendation)
			match.Total = &total
			match.Quartile = &quartile
			match.Recommendation = &recommendation
		}
		matches = append(matches, match)
	}

	c.JSON(200, ScreenResponse{Matches: matches})
}
