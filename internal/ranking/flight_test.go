package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dharmasatrya/tripranker/internal/models"
)

func TestFlightViolations_DirectOnly(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{Flight: &models.FlightPreferences{DirectOnly: ptr(true)}})

	assert.Equal(t, []string{"1 stop (you prefer direct)"}, s.Violations(oneStopFlight("f1")))
	assert.Empty(t, s.Violations(directFlight("f2")))
}

func TestFlightViolations_MaxStops(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{})
	twoStops := flight("f1",
		leg("GA", at(8, 0), at(9, 0)),
		leg("GA", at(10, 0), at(11, 0)),
		leg("GA", at(12, 0), at(13, 0)),
	)

	assert.Equal(t, []string{"2 stops (max 1)"}, s.Violations(twoStops))
	assert.Empty(t, s.Violations(oneStopFlight("f2")), "stops within the limit are not a violation")

	zero := NewFlightStrategy(models.PreferenceProfile{Flight: &models.FlightPreferences{MaxStops: ptr(0)}})
	assert.Equal(t, []string{"1 stop (max 0)"}, zero.Violations(oneStopFlight("f3")))
}

func TestFlightViolations_DirectOnlySuppressesMaxStops(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{Flight: &models.FlightPreferences{
		DirectOnly: ptr(true),
		MaxStops:   ptr(0),
	}})

	assert.Equal(t, []string{"1 stop (you prefer direct)"}, s.Violations(oneStopFlight("f1")))
}

func TestFlightViolations_RedEye(t *testing.T) {
	t.Parallel()

	strict := NewFlightStrategy(models.PreferenceProfile{})
	relaxed := NewFlightStrategy(models.PreferenceProfile{Flight: &models.FlightPreferences{RedEyeOK: ptr(true)}})

	tests := []struct {
		name   string
		dep    time.Time
		arr    time.Time
		redEye bool
	}{
		{"late departure", at(22, 0), at(23, 50), true},
		{"just before cutoff", at(21, 59), at(23, 50), false},
		{"pre-dawn arrival", at(2, 0), at(5, 59), true},
		{"arrival at six", at(3, 0), at(6, 0), false},
		{"daytime", at(10, 0), at(12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := flight("f", leg("GA", tt.dep, tt.arr))
			if tt.redEye {
				assert.Equal(t, []string{"Red-eye flight"}, strict.Violations(c))
			} else {
				assert.Empty(t, strict.Violations(c))
			}
			assert.Empty(t, relaxed.Violations(c))
		})
	}
}

func TestFlightViolations_RedEyeUsesTimestampZone(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{})

	// 23:00 local in UTC+7 is 16:00 UTC; the local hour is what counts.
	late := flight("late", leg("GA", at(23, 0), at(23, 55)))
	assert.Equal(t, []string{"Red-eye flight"}, s.Violations(late))

	// 16:00 local in UTC-8 is midnight UTC.
	pst := time.FixedZone("PST", -8*60*60)
	afternoon := flight("afternoon", leg("AA",
		time.Date(2025, 6, 1, 16, 0, 0, 0, pst),
		time.Date(2025, 6, 1, 19, 0, 0, 0, pst),
	))
	assert.Empty(t, s.Violations(afternoon))
}

func TestFlightViolations_Layover(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{Flight: &models.FlightPreferences{
		MaxStops:        ptr(2),
		MaxLayoverHours: ptr(4.0),
	}})

	// 10:00 -> 15:12 is a 5.2 hour gap; the later 5 hour gap is not reported.
	c := flight("f1",
		leg("GA", at(7, 0), at(10, 0)),
		leg("GA", at(15, 12), at(16, 0)),
		leg("GA", at(21, 0), at(21, 30)),
	)

	assert.Equal(t, []string{"5h layover (max 4h)"}, s.Violations(c))
}

func TestFlightViolations_LayoverWithinLimit(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{Flight: &models.FlightPreferences{MaxLayoverHours: ptr(2.5)}})
	c := flight("f1",
		leg("GA", at(8, 0), at(9, 0)),
		leg("GA", at(11, 30), at(13, 0)),
	)
	assert.Empty(t, s.Violations(c))

	c.Slices[0].Segments[1].DepartingAt = at(11, 31)
	assert.Equal(t, []string{"3h layover (max 2.5h)"}, s.Violations(c))
}

func TestFlightViolations_AvoidedAirlines(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{Flight: &models.FlightPreferences{
		AvoidAirlines: []string{"ba", "AA"},
	}})
	c := flight("f1",
		leg("AA", at(8, 0), at(9, 0)),
		leg("BA", at(10, 0), at(12, 0)),
	)

	assert.Equal(t, []string{"Avoided airline: AA, BA"}, s.Violations(c))
}

func TestFlightViolations_CollectsAllInRuleOrder(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{Flight: &models.FlightPreferences{
		DirectOnly:    ptr(true),
		AvoidAirlines: []string{"AA"},
	}})
	c := flight("f1",
		leg("AA", at(23, 0), at(23, 30)),
		leg("AA", at(5, 0).Add(24*time.Hour), at(7, 0).Add(24*time.Hour)),
	)

	assert.Equal(t, []string{
		"1 stop (you prefer direct)",
		"Red-eye flight",
		"6h layover (max 4h)",
		"Avoided airline: AA",
	}, s.Violations(c))
}

func TestFlightScore_GreatValueDirectRefundable(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{})
	c := withPrice(directFlight("f1"), 450)
	c.Refundable = true
	c.CabinClass = models.CabinEconomy

	score, reasons := s.Score(c)
	assert.Equal(t, 90, score)
	assert.Equal(t, []string{"Direct flight", "Great value", "Refundable"}, reasons)
}

func TestFlightScore_PreferredAirline(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{Flight: &models.FlightPreferences{
		PreferredAirlines: []string{"AA"},
	}})
	c := directFlight("f1")
	c.Airlines = []models.Airline{{Code: "BA"}, {Code: "AA"}}

	score, reasons := s.Score(c)
	assert.Equal(t, 50+20+15, score)
	assert.Equal(t, []string{"Direct flight", "American Airlines"}, reasons)
}

func TestFlightScore_PreferredAirlineSuppliedName(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{Flight: &models.FlightPreferences{
		PreferredAirlines: []string{"GA", "AA"},
	}})
	c := directFlight("f1")
	c.Airlines = []models.Airline{{Code: "GA", Name: "Garuda"}, {Code: "AA"}}

	score, reasons := s.Score(c)
	assert.Equal(t, 85, score, "the bonus applies once")
	assert.Equal(t, []string{"Direct flight", "Garuda"}, reasons)
}

func TestFlightScore_ConnectionWithinLimit(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{})
	score, reasons := s.Score(oneStopFlight("f1"))
	assert.Equal(t, 55, score)
	assert.Empty(t, reasons)
}

func TestFlightScore_PriceTiers(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{})
	tests := []struct {
		price float64
		want  int
	}{
		{0, 80},
		{499.99, 80},
		{500, 75},
		{999.99, 75},
		{1000, 70},
		{2500, 70},
	}
	for _, tt := range tests {
		score, _ := s.Score(withPrice(directFlight("f"), tt.price))
		assert.Equal(t, tt.want, score, "price %v", tt.price)
	}
}

func TestFlightScore_PerPassengerFallsBackToTotal(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{})
	c := directFlight("f1")
	c.Price = models.Price{TotalAmount: 400, Currency: "USD"}

	score, reasons := s.Score(c)
	assert.Equal(t, 80, score)
	assert.Contains(t, reasons, "Great value")
}

func TestFlightScore_MinorBonuses(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{Flight: &models.FlightPreferences{CabinClass: models.CabinBusiness}})

	c := directFlight("f1")
	c.Changeable = true
	score, reasons := s.Score(c)
	assert.Equal(t, 73, score)
	assert.Equal(t, []string{"Direct flight"}, reasons)

	c = directFlight("f2")
	c.CabinClass = "Business"
	score, _ = s.Score(c)
	assert.Equal(t, 75, score)

	c = directFlight("f3")
	c.CabinClass = models.CabinEconomy
	score, _ = s.Score(c)
	assert.Equal(t, 70, score)
}

func TestFlightScore_Duration(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{})
	tests := []struct {
		duration string
		want     int
	}{
		{"4h59m", 75},
		{"PT2H", 75},
		{"5h", 70},
		{"PT7H30M", 70},
		{"", 70},
		{"not a duration", 70},
		{"200000000000000000h", 70},
	}
	for _, tt := range tests {
		c := directFlight("f")
		c.Slices[0].Duration = tt.duration
		score, _ := s.Score(c)
		assert.Equal(t, tt.want, score, "duration %q", tt.duration)
	}
}

func TestFlightScore_Baggage(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{})

	c := directFlight("f1")
	c.Baggage.CheckedBags = 1
	score, reasons := s.Score(c)
	assert.Equal(t, 75, score)
	assert.Equal(t, []string{"Direct flight", "1 checked bag"}, reasons)

	c.Baggage.CheckedBags = 2
	_, reasons = s.Score(c)
	assert.Equal(t, []string{"Direct flight", "2 checked bags"}, reasons)
}

func TestFlightScore_DepartureTime(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{})
	tests := []struct {
		hour    int
		minute  int
		want    int
		morning bool
	}{
		{6, 59, 70, false},
		{7, 0, 73, false},
		{8, 59, 73, false},
		{9, 0, 73, true},
		{12, 59, 73, true},
		{13, 0, 73, false},
		{14, 59, 73, false},
		{15, 0, 70, false},
	}
	for _, tt := range tests {
		c := flight("f", leg("GA", at(tt.hour, tt.minute), at(tt.hour+2, 0)))
		score, reasons := s.Score(c)
		assert.Equal(t, tt.want, score, "departure %02d:%02d", tt.hour, tt.minute)
		assert.Equal(t, tt.morning, contains(reasons, "Morning departure"), "departure %02d:%02d", tt.hour, tt.minute)
	}
}

func TestFlightScore_Everything(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{Flight: &models.FlightPreferences{PreferredAirlines: []string{"GA"}}})
	c := withPrice(flight("f1", leg("GA", at(10, 0), at(12, 0))), 300)
	c.Refundable = true
	c.Changeable = true
	c.Slices[0].Duration = "2h"
	c.Baggage.CheckedBags = 1
	c.CabinClass = models.CabinEconomy

	score, reasons := s.Score(c)
	assert.Equal(t, 50+20+15+10+5+3+5+5+5+3, score)
	assert.Equal(t, []string{
		"Direct flight",
		"Garuda Indonesia",
		"Great value",
		"Refundable",
		"1 checked bag",
		"Morning departure",
	}, reasons)
}

func TestFlightScore_ReturnSliceIgnored(t *testing.T) {
	t.Parallel()

	s := NewFlightStrategy(models.PreferenceProfile{})
	c := directFlight("f1")
	c.Slices = append(c.Slices, models.Slice{Segments: []models.Segment{
		leg("GA", at(23, 0), at(23, 30)),
		leg("GA", at(23, 45), at(4, 0).Add(24*time.Hour)),
		leg("GA", at(5, 0).Add(24*time.Hour), at(6, 0).Add(24*time.Hour)),
	}})

	score, _ := s.Score(c)
	assert.Equal(t, 70, score)
	assert.Empty(t, s.Violations(c))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
