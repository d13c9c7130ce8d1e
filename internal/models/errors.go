package models

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrNoSlices         ValidationError = "candidate has no slices"
	ErrNoSegments       ValidationError = "outbound slice has no segments"
	ErrMissingTimestamp ValidationError = "timestamp is required"
	ErrUnknownTimezone  ValidationError = "timestamp has no offset and no known timezone"
)
