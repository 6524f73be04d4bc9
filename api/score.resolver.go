package api

import (
	"time"

	"fundscore/internal/domain"
	"fundscore/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScoreRequest struct {
	FundID     string  `json:"fundID"`
	SchemeCode string  `json:"schemeCode"`
	AsOf       *string `json:"asOf"`
}

type ScoreResponse struct {
	FundID            string  `json:"fundID"`
	ScoreDate         string  `json:"scoreDate"`
	PeerGroup         string  `json:"peerGroup"`
	ReturnsTotal      float64 `json:"returnsTotal"`
	RiskTotal         float64 `json:"riskTotal"`
	FundamentalsTotal float64 `json:"fundamentalsTotal"`
	OtherTotal        float64 `json:"otherTotal"`
	Total             float64 `json:"total"`
}

func (m ApiHandler) score(c *gin.Context) {
	ctx := c.Request.Context()

	var requestBody ScoreRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	var fundID uuid.UUID
	switch {
	case requestBody.FundID != "":
		parsed, err := uuid.Parse(requestBody.FundID)
		if err != nil {
			returnDomainError(domain.InvalidInputError{Field: "fundID", Reason: err.Error()}, c)
			return
		}
		fundID = parsed
	case requestBody.SchemeCode != "":
		fund, err := m.FundRepository.GetBySchemeCode(ctx, requestBody.SchemeCode)
		if err != nil {
			returnErrorJsonCode(err, c, 404)
			return
		}
		fundID = fund.ID
	default:
		returnDomainError(domain.InvalidInputError{Field: "fundID", Reason: "fundID or schemeCode required"}, c)
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

	record, err := m.ScoringService.ComputeScore(ctx, fundID, asOf)
	if err != nil {
		returnDomainError(err, c)
		return
	}

	c.JSON(200, ScoreResponse{
		FundID:            record.FundID.String(),
		ScoreDate:         record.ScoreDate.Format(time.DateOnly),
		PeerGroup:         record.PeerGroup.String(),
		ReturnsTotal:      record.ReturnsTotal,
		RiskTotal:         record.RiskTotal,
		FundamentalsTotal: record.FundamentalsTotal,
		OtherTotal:        record.OtherTotal,
		Total:             record.Total,
	})
}
