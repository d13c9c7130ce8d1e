package airlines

import "strings"

var names = map[string]string{
	"AA": "American Airlines",
	"AC": "Air Canada",
	"AF": "Air France",
	"AK": "AirAsia",
	"BA": "British Airways",
	"CX": "Cathay Pacific",
	"DL": "Delta Air Lines",
	"EK": "Emirates",
	"GA": "Garuda Indonesia",
	"ID": "Batik Air",
	"IU": "Super Air Jet",
	"JL": "Japan Airlines",
	"JT": "Lion Air",
	"KL": "KLM",
	"LH": "Lufthansa",
	"MH": "Malaysia Airlines",
	"NH": "ANA",
	"QF": "Qantas",
	"QG": "Citilink",
	"QR": "Qatar Airways",
	"QZ": "Indonesia AirAsia",
	"SQ": "Singapore Airlines",
	"TR": "Scoot",
	"UA": "United Airlines",
}

// DisplayName prefers the supplier-provided name, then the built-in table,
// then the code itself.
func DisplayName(code, supplied string) string {
	if n := strings.TrimSpace(supplied); n != "" {
		return n
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if n, ok := names[code]; ok {
		return n
	}
	return code
}
