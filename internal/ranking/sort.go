package ranking

import (
	"sort"

	"github.com/dharmasatrya/tripranker/internal/models"
)

func sortInPreference[C any](scored []models.ScoredCandidate[C]) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}

func sortOutOfPreference[C any](scored []models.ScoredCandidate[C], price func(C) float64) {
	sort.SliceStable(scored, func(i, j int) bool {
		return price(scored[i].Candidate) < price(scored[j].Candidate)
	})
}
