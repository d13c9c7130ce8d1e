package models

// ScoredCandidate is a candidate annotated by one ranking call.
type ScoredCandidate[C any] struct {
	Candidate              C        `json:"candidate"`
	Score                  int      `json:"score"`
	MatchReasons           []string `json:"match_reasons"`
	OutOfPreference        bool     `json:"out_of_preference"`
	OutOfPreferenceReasons []string `json:"out_of_preference_reasons"`
}

type ProfileSource string

const (
	ProfileFromRequest ProfileSource = "request"
	ProfileFromStore   ProfileSource = "store"
	ProfileFromDefault ProfileSource = "default"
)

type FlightRankRequest struct {
	UserID      string             `json:"user_id,omitempty" validate:"omitempty,max=128"`
	Preferences *PreferenceProfile `json:"preferences,omitempty"`
	Candidates  []Candidate        `json:"candidates" validate:"required"`
}

type HotelRankRequest struct {
	UserID      string             `json:"user_id,omitempty" validate:"omitempty,max=128"`
	Preferences *PreferenceProfile `json:"preferences,omitempty"`
	Candidates  []HotelCandidate   `json:"candidates" validate:"required"`
}

type RankMetadata struct {
	TotalCandidates      int           `json:"total_candidates"`
	InPreferenceCount    int           `json:"in_preference_count"`
	OutOfPreferenceCount int           `json:"out_of_preference_count"`
	RankTimeMs           int64         `json:"rank_time_ms"`
	ProfileSource        ProfileSource `json:"profile_source"`
}

type RankResponse[C any] struct {
	Metadata        RankMetadata         `json:"metadata"`
	InPreference    []ScoredCandidate[C] `json:"in_preference"`
	OutOfPreference []ScoredCandidate[C] `json:"out_of_preference"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
