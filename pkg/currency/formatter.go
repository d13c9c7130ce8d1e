package currency

import (
	"fmt"
	"math"
	"strings"
)

// dotGrouped currencies group thousands with "." instead of ",".
var dotGrouped = map[string]bool{
	"IDR": true,
	"EUR": true,
	"VND": true,
}

// Format rounds amount to a whole unit and groups thousands. A non-empty
// code is prefixed: Format(1500000, "IDR") is "IDR 1.500.000",
// Format(1250, "USD") is "USD 1,250" and Format(300, "") is "300".
func Format(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))

	rounded := math.Round(amount)
	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	sep := ","
	if dotGrouped[code] {
		sep = "."
	}
	result := addThousandsSeparator(fmt.Sprintf("%.0f", rounded), sep)

	if code != "" {
		result = code + " " + result
	}
	if negative {
		result = "-" + result
	}

	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
