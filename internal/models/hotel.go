package models

type Chain struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

type HotelPrice struct {
	TotalAmount float64 `json:"total_amount"`
	PerNight    float64 `json:"per_night"`
	Currency    string  `json:"currency"`
}

// HotelCandidate is a normalized accommodation offer.
type HotelCandidate struct {
	ID                string     `json:"id"`
	Provider          string     `json:"provider,omitempty"`
	Name              string     `json:"name"`
	Chain             Chain      `json:"chain"`
	PropertyType      string     `json:"property_type,omitempty"`
	Stars             float64    `json:"stars"`
	ReviewScore       float64    `json:"review_score"`
	Nights            int        `json:"nights"`
	Price             HotelPrice `json:"price"`
	Amenities         []string   `json:"amenities,omitempty"`
	Refundable        bool       `json:"refundable"`
	BreakfastIncluded bool       `json:"breakfast_included"`
}

// NightlyRate uses the supplied per-night price, else spreads the total over
// the stay.
func (h HotelCandidate) NightlyRate() float64 {
	if h.Price.PerNight > 0 {
		return h.Price.PerNight
	}
	if h.Nights > 0 {
		return h.Price.TotalAmount / float64(h.Nights)
	}
	return h.Price.TotalAmount
}
