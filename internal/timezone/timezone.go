package timezone

import (
	"strings"
	"time"
	_ "time/tzdata" // IANA zones without relying on the host database
)

var (
	WIB  *time.Location // UTC+7 - Western Indonesia (Jakarta, Surabaya)
	WITA *time.Location // UTC+8 - Central Indonesia (Bali, Makassar)
	WIT  *time.Location // UTC+9 - Eastern Indonesia (Papua)
)

func init() {
	WIB = time.FixedZone("WIB", 7*60*60)
	WITA = time.FixedZone("WITA", 8*60*60)
	WIT = time.FixedZone("WIT", 9*60*60)
}

var airportTimezones = map[string]string{
	// WIB (UTC+7) - Western Indonesia
	"CGK": "WIB", // Jakarta - Soekarno-Hatta
	"HLP": "WIB", // Jakarta - Halim Perdanakusuma
	"SUB": "WIB", // Surabaya - Juanda
	"JOG": "WIB", // Yogyakarta - Adisucipto
	"KNO": "WIB", // Medan - Kualanamu
	"PLM": "WIB", // Palembang - Sultan Mahmud Badaruddin II
	"BTH": "WIB", // Batam - Hang Nadim

	// WITA (UTC+8) - Central Indonesia
	"DPS": "WITA", // Bali - Ngurah Rai
	"LOP": "WITA", // Lombok - Lombok International
	"UPG": "WITA", // Makassar - Sultan Hasanuddin
	"BPN": "WITA", // Balikpapan - Sultan Aji Muhammad Sulaiman

	// WIT (UTC+9) - Eastern Indonesia
	"DJJ": "WIT", // Jayapura - Sentani
	"AMQ": "WIT", // Ambon - Pattimura

	// International hubs
	"SIN": "Asia/Singapore",
	"KUL": "Asia/Kuala_Lumpur",
	"BKK": "Asia/Bangkok",
	"HKG": "Asia/Hong_Kong",
	"NRT": "Asia/Tokyo",
	"HND": "Asia/Tokyo",
	"SYD": "Australia/Sydney",
	"DXB": "Asia/Dubai",
	"DOH": "Asia/Qatar",
	"LHR": "Europe/London",
	"CDG": "Europe/Paris",
	"FRA": "Europe/Berlin",
	"AMS": "Europe/Amsterdam",
	"JFK": "America/New_York",
	"ORD": "America/Chicago",
	"DFW": "America/Chicago",
	"DEN": "America/Denver",
	"LAX": "America/Los_Angeles",
	"SFO": "America/Los_Angeles",
}

// GetTimezoneByAirport returns the zone name for a known airport and
// false for anything else. There is no default zone.
func GetTimezoneByAirport(code string) (string, bool) {
	tz, ok := airportTimezones[strings.ToUpper(strings.TrimSpace(code))]
	return tz, ok
}

// GetLocationByName accepts the Indonesian aliases, their UTC+N spellings
// and IANA names.
func GetLocationByName(name string) (*time.Location, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "LOCAL":
		return nil, false
	case "WIB", "UTC+7":
		return WIB, true
	case "WITA", "UTC+8":
		return WITA, true
	case "WIT", "UTC+9":
		return WIT, true
	}
	loc, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return nil, false
	}
	return loc, true
}

// Resolve picks the location for a naive local timestamp: an explicit zone
// name wins over the airport lookup.
func Resolve(tzName, airportCode string) (*time.Location, bool) {
	if loc, ok := GetLocationByName(tzName); ok {
		return loc, true
	}
	if tz, ok := GetTimezoneByAirport(airportCode); ok {
		return GetLocationByName(tz)
	}
	return nil, false
}

var offsetFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700", // Without colon
	"2006-01-02T15:04-07:00",
	"2006-01-02 15:04:05-07:00",
}

var localFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTimeWithOffset parses timeStr keeping its embedded offset. Strings
// without an offset are read as wall-clock time in loc; with a nil loc they
// are rejected.
func ParseTimeWithOffset(timeStr string, loc *time.Location) (time.Time, error) {
	timeStr = strings.TrimSpace(timeStr)

	for _, format := range offsetFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, nil
		}
	}

	if loc != nil {
		for _, format := range localFormats {
			if t, err := time.ParseInLocation(format, timeStr, loc); err == nil {
				return t, nil
			}
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   timeStr,
		Message: "unable to parse time string",
	}
}

// LocalHour is the wall-clock hour in the timestamp's own location. It never
// converts to the process zone.
func LocalHour(t time.Time) int {
	return t.Hour()
}
