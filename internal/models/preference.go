package models

import "strings"

// PreferenceProfile is the per-call preference payload. Every field is
// optional; absent fields resolve to the defaults documented on
// DefaultFlightPolicy and DefaultHotelPolicy.
type PreferenceProfile struct {
	Budget        *BudgetPreferences        `json:"budget,omitempty"`
	Flight        *FlightPreferences        `json:"flight,omitempty"`
	Accommodation *AccommodationPreferences `json:"accommodation,omitempty"`
}

type FlightPreferences struct {
	CabinClass        CabinClass `json:"cabin_class,omitempty" validate:"omitempty,cabin_class"`
	DirectOnly        *bool      `json:"direct_only,omitempty"`
	MaxStops          *int       `json:"max_stops,omitempty" validate:"omitnil,min=0"`
	MaxLayoverHours   *float64   `json:"max_layover_hours,omitempty" validate:"omitnil,gt=0"`
	RedEyeOK          *bool      `json:"red_eye_ok,omitempty"`
	AvoidAirlines     []string   `json:"avoid_airlines,omitempty"`
	PreferredAirlines []string   `json:"preferred_airlines,omitempty"`
}

type BudgetPreferences struct {
	Currency    string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	MaxPerNight *float64 `json:"max_per_night,omitempty" validate:"omitnil,gt=0"`
}

type AccommodationPreferences struct {
	MinStars           *float64 `json:"min_stars,omitempty" validate:"omitnil,min=0,max=5"`
	PropertyTypes      []string `json:"property_types,omitempty"`
	RequiredAmenities  []string `json:"required_amenities,omitempty"`
	PreferredAmenities []string `json:"preferred_amenities,omitempty"`
	AvoidChains        []string `json:"avoid_chains,omitempty"`
	PreferredChains    []string `json:"preferred_chains,omitempty"`
}

// FlightPolicy is a fully resolved flight profile.
type FlightPolicy struct {
	CabinClass        CabinClass
	DirectOnly        bool
	MaxStops          int
	MaxLayoverHours   float64
	RedEyeOK          bool
	AvoidAirlines     []string
	PreferredAirlines []string
}

// DefaultFlightPolicy: economy, connections allowed up to one stop, layovers
// up to 4 hours, no red-eyes, no airline lists.
func DefaultFlightPolicy() FlightPolicy {
	return FlightPolicy{
		CabinClass:        CabinEconomy,
		DirectOnly:        false,
		MaxStops:          1,
		MaxLayoverHours:   4,
		RedEyeOK:          false,
		AvoidAirlines:     []string{},
		PreferredAirlines: []string{},
	}
}

// HotelPolicy is a fully resolved accommodation profile. Zero MaxPerNight
// and MinStars mean no limit.
type HotelPolicy struct {
	Currency           string
	MaxPerNight        float64
	MinStars           float64
	PropertyTypes      []string
	RequiredAmenities  []string
	PreferredAmenities []string
	AvoidChains        []string
	PreferredChains    []string
}

func DefaultHotelPolicy() HotelPolicy {
	return HotelPolicy{}
}

// DefaultPreferenceProfile spells every default out explicitly.
func DefaultPreferenceProfile() PreferenceProfile {
	fp := DefaultFlightPolicy()
	directOnly := fp.DirectOnly
	maxStops := fp.MaxStops
	maxLayover := fp.MaxLayoverHours
	redEyeOK := fp.RedEyeOK

	return PreferenceProfile{
		Budget: &BudgetPreferences{},
		Flight: &FlightPreferences{
			CabinClass:        fp.CabinClass,
			DirectOnly:        &directOnly,
			MaxStops:          &maxStops,
			MaxLayoverHours:   &maxLayover,
			RedEyeOK:          &redEyeOK,
			AvoidAirlines:     []string{},
			PreferredAirlines: []string{},
		},
		Accommodation: &AccommodationPreferences{},
	}
}

// FlightPolicy overlays the supplied flight preferences on the defaults.
func (p PreferenceProfile) FlightPolicy() FlightPolicy {
	policy := DefaultFlightPolicy()
	f := p.Flight
	if f == nil {
		return policy
	}

	if c := f.CabinClass.Normalize(); c.Valid() {
		policy.CabinClass = c
	}
	if f.DirectOnly != nil {
		policy.DirectOnly = *f.DirectOnly
	}
	if f.MaxStops != nil && *f.MaxStops >= 0 {
		policy.MaxStops = *f.MaxStops
	}
	if f.MaxLayoverHours != nil && *f.MaxLayoverHours > 0 {
		policy.MaxLayoverHours = *f.MaxLayoverHours
	}
	if f.RedEyeOK != nil {
		policy.RedEyeOK = *f.RedEyeOK
	}
	policy.AvoidAirlines = normalizeCodes(f.AvoidAirlines)
	policy.PreferredAirlines = normalizeCodes(f.PreferredAirlines)

	return policy
}

// HotelPolicy overlays the budget and accommodation preferences on the
// defaults.
func (p PreferenceProfile) HotelPolicy() HotelPolicy {
	policy := DefaultHotelPolicy()

	if b := p.Budget; b != nil {
		policy.Currency = strings.ToUpper(strings.TrimSpace(b.Currency))
		if b.MaxPerNight != nil && *b.MaxPerNight > 0 {
			policy.MaxPerNight = *b.MaxPerNight
		}
	}

	if a := p.Accommodation; a != nil {
		if a.MinStars != nil && *a.MinStars > 0 {
			policy.MinStars = *a.MinStars
		}
		policy.PropertyTypes = normalizeTerms(a.PropertyTypes)
		policy.RequiredAmenities = normalizeTerms(a.RequiredAmenities)
		policy.PreferredAmenities = normalizeTerms(a.PreferredAmenities)
		policy.AvoidChains = normalizeCodes(a.AvoidChains)
		policy.PreferredChains = normalizeCodes(a.PreferredChains)
	}

	return policy
}

func normalizeCodes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func normalizeTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
