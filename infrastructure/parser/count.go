package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// countRe finds the first human-readable count token in a string:
// digits with optional decimal point and thousands separators, followed by an
// optional K/M/B suffix.
var countRe = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*([KMB])?`)

var suffixMultipliers = map[string]float64{
	"K": 1_000,
	"M": 1_000_000,
	"B": 1_000_000_000,
}

// ParseCount converts a human-readable count string ("12,345", "5.3M") to an
// integer. It is total: unparseable input yields 0, never an error. Suffix
// multiplication truncates toward zero rather than rounding, matching the
// service's historical behavior.
func ParseCount(text string) int64 {
	g := countRe.FindStringSubmatch(strings.TrimSpace(text))
	if g == nil {
		return 0
	}
	num := strings.ReplaceAll(g[1], ",", "")
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f < 0 {
		return 0
	}
	if suffix := strings.ToUpper(g[2]); suffix != "" {
		f *= suffixMultipliers[suffix]
	}
	return int64(f)
}
