package ranking

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dharmasatrya/tripranker/internal/airlines"
	"github.com/dharmasatrya/tripranker/internal/duration"
	"github.com/dharmasatrya/tripranker/internal/models"
	"github.com/dharmasatrya/tripranker/internal/timezone"
)

const (
	redEyeDepartureHour = 22
	redEyeArrivalHour   = 6

	greatValuePrice = 500
	fairValuePrice  = 1000
	shortTripMins   = 300
)

// FlightStrategy applies one resolved flight policy. It holds no mutable
// state and is safe for concurrent use.
type FlightStrategy struct {
	policy    models.FlightPolicy
	avoid     map[string]bool
	preferred map[string]bool
}

func NewFlightStrategy(profile models.PreferenceProfile) *FlightStrategy {
	policy := profile.FlightPolicy()
	return &FlightStrategy{
		policy:    policy,
		avoid:     codeSet(policy.AvoidAirlines),
		preferred: codeSet(policy.PreferredAirlines),
	}
}

func (s *FlightStrategy) Validate(c models.Candidate) error {
	return c.Validate()
}

func (s *FlightStrategy) Price(c models.Candidate) float64 {
	return c.Price.TotalAmount
}

func (s *FlightStrategy) ID(c models.Candidate) string {
	return c.ID
}

// Violations checks, in order: direct-only, max stops, red-eye, max layover,
// avoided airlines.
func (s *FlightStrategy) Violations(c models.Candidate) []string {
	outbound := c.Outbound()
	stops := outbound.Stops()

	var reasons []string

	if s.policy.DirectOnly && stops > 0 {
		reasons = append(reasons, fmt.Sprintf("%s (you prefer direct)", pluralize(stops, "stop")))
	} else if stops > s.policy.MaxStops {
		reasons = append(reasons, fmt.Sprintf("%s (max %d)", pluralize(stops, "stop"), s.policy.MaxStops))
	}

	if !s.policy.RedEyeOK && isRedEye(outbound) {
		reasons = append(reasons, "Red-eye flight")
	}

	if stops > 0 {
		if gap, found := firstLongLayover(outbound, s.policy.MaxLayoverHours); found {
			reasons = append(reasons, fmt.Sprintf("%dh layover (max %sh)",
				int(math.Round(gap)), formatNumber(s.policy.MaxLayoverHours)))
		}
	}

	if avoided := s.avoidedCarriers(c); len(avoided) > 0 {
		reasons = append(reasons, "Avoided airline: "+strings.Join(avoided, ", "))
	}

	return reasons
}

// Score starts at BaselineScore and only adds.
func (s *FlightStrategy) Score(c models.Candidate) (int, []string) {
	outbound := c.Outbound()
	stops := outbound.Stops()

	score := BaselineScore
	var reasons []string

	if stops == 0 {
		score += 20
		reasons = append(reasons, "Direct flight")
	} else if stops <= s.policy.MaxStops {
		score += 5
	}

	if name, ok := s.preferredCarrier(c); ok {
		score += 15
		reasons = append(reasons, name)
	}

	switch price := c.Price.PassengerAmount(); {
	case price < greatValuePrice:
		score += 10
		reasons = append(reasons, "Great value")
	case price < fairValuePrice:
		score += 5
	}

	if c.Refundable {
		score += 5
		reasons = append(reasons, "Refundable")
	}

	if c.Changeable {
		score += 3
	}

	if mins, ok := duration.ParseCompact(outbound.Duration); ok && mins < shortTripMins {
		score += 5
	}

	if bags := c.Baggage.CheckedBags; bags > 0 {
		score += 5
		reasons = append(reasons, pluralize(bags, "checked bag"))
	}

	if c.CabinClass != "" && c.CabinClass.Normalize() == s.policy.CabinClass {
		score += 5
	}

	if hour := timezone.LocalHour(outbound.Segments[0].DepartingAt); hour >= 7 && hour <= 14 {
		score += 3
		if hour >= 9 && hour <= 12 {
			reasons = append(reasons, "Morning departure")
		}
	}

	return score, reasons
}

func isRedEye(outbound models.Slice) bool {
	first := outbound.Segments[0]
	last := outbound.Segments[len(outbound.Segments)-1]

	return timezone.LocalHour(first.DepartingAt) >= redEyeDepartureHour ||
		timezone.LocalHour(last.ArrivingAt) < redEyeArrivalHour
}

// firstLongLayover returns the first connection gap, in hours, that exceeds
// maxHours.
func firstLongLayover(outbound models.Slice, maxHours float64) (float64, bool) {
	for i := 1; i < len(outbound.Segments); i++ {
		gap := outbound.Segments[i].DepartingAt.Sub(outbound.Segments[i-1].ArrivingAt).Hours()
		if gap > maxHours {
			return gap, true
		}
	}
	return 0, false
}

func (s *FlightStrategy) avoidedCarriers(c models.Candidate) []string {
	if len(s.avoid) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var codes []string
	for _, a := range c.Carriers() {
		code := strings.ToUpper(a.Code)
		if s.avoid[code] && !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	return codes
}

func (s *FlightStrategy) preferredCarrier(c models.Candidate) (string, bool) {
	if len(s.preferred) == 0 {
		return "", false
	}

	for _, a := range c.Carriers() {
		if s.preferred[strings.ToUpper(a.Code)] {
			return airlines.DisplayName(a.Code, a.Name), true
		}
	}
	return "", false
}

func codeSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[strings.ToUpper(c)] = true
	}
	return set
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var _ Strategy[models.Candidate] = (*FlightStrategy)(nil)
