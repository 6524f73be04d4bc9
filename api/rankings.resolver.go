package api

import (
	"time"

	"fundscore/internal/domain"
	"fundscore/internal/repository"
	"fundscore/internal/util"

	"github.com/gin-gonic/gin"
)

type RankingRow struct {
	FundID         string  `json:"fundID"`
	PeerGroup      string  `json:"peerGroup"`
	Total          float64 `json:"total"`
	Rank           int     `json:"rank"`
	GroupSize      int     `json:"groupSize"`
	Quartile       int     `json:"quartile"`
	Percentile     float64 `json:"percentile"`
	Recommendation string  `json:"recommendation"`
}

type RankingsResponse struct {
	ScoreDate string       `json:"scoreDate"`
	Rankings  []RankingRow `json:"rankings"`
}

// rankings serves the latest persisted peer-group rankings, optionally
// filtered by category and subcategory or pinned to a score date.
func (m ApiHandler) rankings(c *gin.Context) {
	ctx := c.Request.Context()

	filter := repository.FundScoreListFilter{}
	if categoryParam := c.Query("category"); categoryParam != "" {
		category := domain.Category(categoryParam)
		filter.Category = &category
	}
	if subcategoryParam := c.Query("subcategory"); subcategoryParam != "" {
		subcategory := subcategoryParam
		filter.Subcategory = &subcategory
	}

	if dateParam := c.Query("date"); dateParam != "" {
		scoreDate, err := util.ParseDate(dateParam)
		if err != nil {
			returnDomainError(domain.InvalidInputError{Field: "date", Reason: err.Error()}, c)
			return
		}
		filter.ScoreDate = &scoreDate
	} else {
		latest, err := m.FundScoreRepository.LatestScoreDate(ctx)
		if err != nil {
			returnDomainError(err, c)
			return
		}
		if latest == nil {
			c.JSON(200, RankingsResponse{Rankings: []RankingRow{}})
			return
		}
		filter.ScoreDate = latest
	}

	records, err := m.FundScoreRepository.List(ctx, filter)
	if err != nil {
		returnDomainError(err, c)
		return
	}

	rows := make([]RankingRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, RankingRow{
			FundID:         rec.FundID.String(),
			PeerGroup:      rec.PeerGroup.String(),
			Total:          rec.Total,
			Rank:           rec.Rank,
			GroupSize:      rec.GroupSize,
			Quartile:       rec.Quartile,
			Percentile:     rec.Percentile,
			Recommendation: string(rec.Recommendation),
		})
	}

	c.JSON(200, RankingsResponse{
		ScoreDate: filter.ScoreDate.Format(time.DateOnly),
		Rankings:  rows,
	})
}
