package planning

import (
	"cmp"
	"slices"
)

// Scoring weights. Terms are additive, so their order does not matter.
const (
	friendlinessWeight = 10.0
	likedBonus         = 5.0
	dislikedPenalty    = 10.0
	travelPenalty      = 20.0
	costPenalty        = 5.0
	weatherPenalty     = 3.0

	// A venue costing more than this share of the budget is penalized.
	costShareOfBudget = 0.4
)

// Score computes a candidate's suitability for the given input.
func Score(c VenueCandidate, in *PlanningInput) float64 {
	score := c.BabyFriendliness * friendlinessWeight

	if in.Liked.Has(c.Category) {
		score += likedBonus
	}
	if in.Disliked.Has(c.Category) {
		score -= dislikedPenalty
	}
	if c.TravelTime > in.MaxTravelTime {
		score -= travelPenalty
	}
	if c.Cost > costShareOfBudget*in.Budget {
		score -= costPenalty
	}
	if !c.WeatherSuitable {
		score -= weatherPenalty
	}
	return score
}

// Rank scores every candidate and returns scored copies ordered by descending
// score. Equal scores keep their input order. The input slice is not modified.
func Rank(candidates []VenueCandidate, in *PlanningInput) []VenueCandidate {
	ranked := make([]VenueCandidate, len(candidates))
	for i, c := range candidates {
		ranked[i] = c.WithScore(Score(c, in))
	}
	slices.SortStableFunc(ranked, func(a, b VenueCandidate) int {
		sa, _ := a.Scored()
		sb, _ := b.Scored()
		return cmp.Compare(sb, sa)
	})
	return ranked
}
