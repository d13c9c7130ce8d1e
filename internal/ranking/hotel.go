package ranking

import (
	"fmt"
	"strings"

	"github.com/dharmasatrya/tripranker/internal/models"
	"github.com/dharmasatrya/tripranker/pkg/currency"
)

const (
	hotelGreatValueRate = 100
	hotelFairValueRate  = 200

	excellentReviewScore = 8.5
	goodReviewScore      = 7.5
)

// HotelStrategy mirrors FlightStrategy for accommodation offers.
type HotelStrategy struct {
	policy    models.HotelPolicy
	avoid     map[string]bool
	preferred map[string]bool
	types     map[string]bool
}

func NewHotelStrategy(profile models.PreferenceProfile) *HotelStrategy {
	policy := profile.HotelPolicy()
	types := make(map[string]bool, len(policy.PropertyTypes))
	for _, t := range policy.PropertyTypes {
		types[strings.ToLower(t)] = true
	}

	return &HotelStrategy{
		policy:    policy,
		avoid:     codeSet(policy.AvoidChains),
		preferred: codeSet(policy.PreferredChains),
		types:     types,
	}
}

// Validate accepts every hotel; missing optional data only forfeits bonuses.
func (s *HotelStrategy) Validate(models.HotelCandidate) error {
	return nil
}

func (s *HotelStrategy) Price(h models.HotelCandidate) float64 {
	return h.Price.TotalAmount
}

func (s *HotelStrategy) ID(h models.HotelCandidate) string {
	return h.ID
}

// Violations checks, in order: nightly budget, minimum stars, required
// amenities, avoided chains, property type.
func (s *HotelStrategy) Violations(h models.HotelCandidate) []string {
	var reasons []string

	if limit := s.policy.MaxPerNight; limit > 0 {
		if rate := h.NightlyRate(); rate > limit {
			reasons = append(reasons, fmt.Sprintf("%s/night (max %s)",
				currency.Format(rate, s.policy.Currency), currency.Format(limit, s.policy.Currency)))
		}
	}

	if minStars := s.policy.MinStars; minStars > 0 && h.Stars < minStars {
		label := "Unrated"
		if h.Stars > 0 {
			label = formatNumber(h.Stars) + "-star"
		}
		reasons = append(reasons, fmt.Sprintf("%s (you prefer %s+ stars)", label, formatNumber(minStars)))
	}

	if missing := missingAmenities(h.Amenities, s.policy.RequiredAmenities); len(missing) > 0 {
		reasons = append(reasons, "Missing amenities: "+strings.Join(missing, ", "))
	}

	if code := strings.ToUpper(h.Chain.Code); code != "" && s.avoid[code] {
		reasons = append(reasons, "Avoided chain: "+code)
	}

	if len(s.types) > 0 && h.PropertyType != "" && !s.types[strings.ToLower(h.PropertyType)] {
		reasons = append(reasons, fmt.Sprintf("%s (you prefer %s)",
			h.PropertyType, strings.Join(s.policy.PropertyTypes, ", ")))
	}

	return reasons
}

func (s *HotelStrategy) Score(h models.HotelCandidate) (int, []string) {
	score := BaselineScore
	var reasons []string

	if code := strings.ToUpper(h.Chain.Code); code != "" && s.preferred[code] {
		score += 15
		name := h.Chain.Name
		if name == "" {
			name = code
		}
		reasons = append(reasons, name)
	}

	switch rate := h.NightlyRate(); {
	case rate < hotelGreatValueRate:
		score += 10
		reasons = append(reasons, "Great value")
	case rate < hotelFairValueRate:
		score += 5
	}

	if h.Refundable {
		score += 5
		reasons = append(reasons, "Refundable")
	}

	if h.BreakfastIncluded {
		score += 5
		reasons = append(reasons, "Breakfast included")
	}

	switch {
	case h.ReviewScore >= excellentReviewScore:
		score += 10
		reasons = append(reasons, "Excellent reviews")
	case h.ReviewScore >= goodReviewScore:
		score += 5
	}

	have := termSet(h.Amenities)
	for _, a := range s.policy.PreferredAmenities {
		if have[a] {
			score += 2
		}
	}

	if minStars := s.policy.MinStars; minStars > 0 && h.Stars >= minStars+1 {
		score += 3
	}

	return score, reasons
}

func missingAmenities(have, required []string) []string {
	if len(required) == 0 {
		return nil
	}
	set := termSet(have)
	var missing []string
	for _, r := range required {
		if !set[r] {
			missing = append(missing, r)
		}
	}
	return missing
}

func termSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range terms {
		set[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return set
}

var _ Strategy[models.HotelCandidate] = (*HotelStrategy)(nil)
