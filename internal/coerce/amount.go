package coerce

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/pboc-bom/internal/common"
)

var nonAmountRe = regexp.MustCompile(`[^\d.]`)

// ParseAmount strips everything but digits and dots ("1,234.00元" -> 1234) and
// parses the rest.
func ParseAmount(s string) (float64, error) {
	cleaned := nonAmountRe.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, common.NewFormatError("amount", s, `[\d.]+`)
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, common.NewFormatError("amount", s, `[\d.]+`)
	}
	return f, nil
}

// ParseFloat parses a plain number, trimming spaces.
func ParseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, common.NewFormatError("number", s, "")
	}
	return f, nil
}

// NaN marks an absent numeric value.
func NaN() float64 { return math.NaN() }

// IsNaN reports whether f is absent.
func IsNaN(f float64) bool { return math.IsNaN(f) }

// RoundHalfEven rounds f to the given number of decimal places; negative
// places round to tens, hundreds and so on.
func RoundHalfEven(f float64, places int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	if places < 0 {
		q := math.Pow(10, float64(-places))
		return math.RoundToEven(f/q) * q
	}
	p := math.Pow(10, float64(places))
	return math.RoundToEven(f*p) / p
}
