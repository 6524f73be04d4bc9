package ranker

import (
	"math"
	"sort"

	"fundscore/internal/domain"
)

// RankPeerGroups partitions the given score records (all for one score
// date) by peer-group key and ranks each group independently. It
// returns the same records with rank, quartile, percentile and
// recommendation filled in, grouped order preserved within groups.
func RankPeerGroups(records []domain.ScoreRecord) []domain.ScoreRecord {
	groups := map[domain.PeerGroupKey][]domain.ScoreRecord{}
	order := []domain.PeerGroupKey{}
	for _, rec := range records {
		if _, ok := groups[rec.PeerGroup]; !ok {
			order = append(order, rec.PeerGroup)
		}
		groups[rec.PeerGroup] = append(groups[rec.PeerGroup], rec)
	}

	sort.Slice(order, func(i, j int) bool {
		return order[i].String() < order[j].String()
	})

	out := make([]domain.ScoreRecord, 0, len(records))
	for _, key := range order {
		out = append(out, RankGroup(groups[key])...)
	}
	return out
}

// RankGroup ranks a single peer cohort. Sort is descending by composite
// total with fund id as the tiebreak, so repeated runs over the same
// inputs produce identical rankings.
func RankGroup(group []domain.ScoreRecord) []domain.ScoreRecord {
	ranked := make([]domain.ScoreRecord, len(group))
	copy(ranked, group)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].FundID.String() < ranked[j].FundID.String()
	})

	n := len(ranked)
	for i := range ranked {
		rank := i + 1
		ranked[i].Rank = rank
		ranked[i].GroupSize = n
		ranked[i].Quartile = quartileOf(rank, n)
		ranked[i].Percentile = float64(rank) / float64(n) * 100
		ranked[i].Recommendation = Recommend(ranked[i])
	}
	return ranked
}

// quartileOf places a rank into one of four bands. Boundaries are
// ceil(n*0.25), ceil(n*0.50), ceil(n*0.75), so group sizes not
// divisible by 4 still partition without gaps. Groups smaller than 4
// degrade gracefully - funds bunch into the upper quartiles rather
// than erroring.
func quartileOf(rank, groupSize int) int {
	n := float64(groupSize)
	switch {
	case rank <= int(math.Ceil(n*0.25)):
		return 1
	case rank <= int(math.Ceil(n*0.50)):
		return 2
	case rank <= int(math.Ceil(n*0.75)):
		return 3
	}
	return 4
}
