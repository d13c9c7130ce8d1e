package ranking

import (
	"time"

	"github.com/dharmasatrya/tripranker/internal/models"
)

var wib = time.FixedZone("WIB", 7*60*60)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 1, hour, minute, 0, 0, wib)
}

func leg(carrier string, dep, arr time.Time) models.Segment {
	return models.Segment{
		Airline:     models.Airline{Code: carrier},
		Origin:      "CGK",
		Destination: "DPS",
		DepartingAt: dep,
		ArrivingAt:  arr,
	}
}

// flight builds a single-slice candidate priced outside every value tier,
// so tests only see the bonuses they opt into.
func flight(id string, legs ...models.Segment) models.Candidate {
	return models.Candidate{
		ID:     id,
		Slices: []models.Slice{{Origin: "CGK", Destination: "DPS", Segments: legs}},
		Price:  models.Price{TotalAmount: 1200, PerPassenger: 1200, Currency: "USD"},
	}
}

func directFlight(id string) models.Candidate {
	return flight(id, leg("GA", at(16, 0), at(18, 0)))
}

func oneStopFlight(id string) models.Candidate {
	return flight(id,
		leg("GA", at(16, 0), at(17, 0)),
		leg("GA", at(18, 0), at(20, 0)),
	)
}

func withPrice(c models.Candidate, total float64) models.Candidate {
	c.Price.TotalAmount = total
	c.Price.PerPassenger = total
	return c
}

func ptr[T any](v T) *T {
	return &v
}
