package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dharmasatrya/tripranker/internal/timezone"
)

type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

// Normalize lower-cases the class and folds "premium economy" spellings.
func (c CabinClass) Normalize() CabinClass {
	s := strings.ToLower(strings.TrimSpace(string(c)))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return CabinClass(s)
}

// Valid reports whether c is one of the four known classes. Callers normalize
// first.
func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

type Airline struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// Segment is one flown leg. DepartingAt and ArrivingAt carry the local zone
// of their airport; see UnmarshalJSON.
type Segment struct {
	Airline             Airline   `json:"airline"`
	FlightNumber        string    `json:"flight_number,omitempty"`
	Origin              string    `json:"origin"`
	Destination         string    `json:"destination"`
	OriginTimezone      string    `json:"origin_timezone,omitempty"`
	DestinationTimezone string    `json:"destination_timezone,omitempty"`
	DepartingAt         time.Time `json:"departing_at"`
	ArrivingAt          time.Time `json:"arriving_at"`
	Aircraft            *string   `json:"aircraft,omitempty"`
}

// UnmarshalJSON keeps embedded offsets as-is. Naive local timestamps are
// placed in the explicit segment timezone, then the airport's zone; if
// neither is known the segment is rejected.
func (s *Segment) UnmarshalJSON(data []byte) error {
	type alias Segment
	aux := struct {
		*alias
		DepartingAt string `json:"departing_at"`
		ArrivingAt  string `json:"arriving_at"`
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	dep, err := parseSegmentTime(aux.DepartingAt, s.OriginTimezone, s.Origin)
	if err != nil {
		return fmt.Errorf("departing_at: %w", err)
	}
	arr, err := parseSegmentTime(aux.ArrivingAt, s.DestinationTimezone, s.Destination)
	if err != nil {
		return fmt.Errorf("arriving_at: %w", err)
	}

	s.DepartingAt = dep
	s.ArrivingAt = arr
	return nil
}

func parseSegmentTime(value, tzName, airport string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, ErrMissingTimestamp
	}
	if t, err := timezone.ParseTimeWithOffset(value, nil); err == nil {
		return t, nil
	}
	loc, ok := timezone.Resolve(tzName, airport)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q at %s", ErrUnknownTimezone, value, airport)
	}
	return timezone.ParseTimeWithOffset(value, loc)
}

// Slice is one direction of a trip.
type Slice struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Duration    string    `json:"duration,omitempty"`
	Segments    []Segment `json:"segments"`
}

func (s Slice) Stops() int {
	if len(s.Segments) == 0 {
		return 0
	}
	return len(s.Segments) - 1
}

type Price struct {
	TotalAmount  float64 `json:"total_amount"`
	PerPassenger float64 `json:"per_passenger"`
	Currency     string  `json:"currency"`
}

// PassengerAmount falls back to the total when no per-passenger split was
// supplied.
func (p Price) PassengerAmount() float64 {
	if p.PerPassenger > 0 {
		return p.PerPassenger
	}
	return p.TotalAmount
}

type Baggage struct {
	CheckedBags int `json:"checked_bags"`
	CabinBags   int `json:"cabin_bags"`
}

// Candidate is a normalized flight offer. Slices[0] is the outbound slice.
type Candidate struct {
	ID             string     `json:"id"`
	Provider       string     `json:"provider,omitempty"`
	Slices         []Slice    `json:"slices"`
	Price          Price      `json:"price"`
	CabinClass     CabinClass `json:"cabin_class,omitempty"`
	Airlines       []Airline  `json:"airlines,omitempty"`
	Refundable     bool       `json:"refundable"`
	Changeable     bool       `json:"changeable"`
	Baggage        Baggage    `json:"baggage"`
	AvailableSeats int        `json:"available_seats,omitempty"`
}

// Validate checks the parts the ranking rules index into.
func (c Candidate) Validate() error {
	if len(c.Slices) == 0 {
		return ErrNoSlices
	}
	if len(c.Slices[0].Segments) == 0 {
		return ErrNoSegments
	}
	return nil
}

func (c Candidate) Outbound() Slice {
	return c.Slices[0]
}

// Carriers returns the candidate's airline set: the explicit list when
// present, otherwise the distinct segment carriers in flown order.
func (c Candidate) Carriers() []Airline {
	if len(c.Airlines) > 0 {
		return c.Airlines
	}

	seen := make(map[string]bool)
	var result []Airline
	for _, s := range c.Slices {
		for _, seg := range s.Segments {
			code := strings.ToUpper(seg.Airline.Code)
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			result = append(result, seg.Airline)
		}
	}
	return result
}
