package coerce

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/joseph-ayodele/pboc-bom/internal/common"
)

// DateLayout is the canonical rendering of a parsed date.
const DateLayout = "2006-01-02"

var nonDigitRe = regexp.MustCompile(`\D`)

func pad2(s string) string {
	if len(s) >= 2 {
		return s
	}
	return "0" + s
}

// ParseDate accepts "2019.01.01", "2019年1月1日" and similar. Empty input
// yields the zero time, which callers treat as absent.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	parts := nonDigitRe.Split(s, -1)
	if len(parts) < 3 {
		return time.Time{}, common.NewFormatError("date", s, "YYYY.MM.DD")
	}
	t, err := time.Parse(DateLayout, parts[0]+"-"+pad2(parts[1])+"-"+pad2(parts[2]))
	if err != nil {
		return time.Time{}, common.NewFormatError("date", s, "YYYY.MM.DD")
	}
	return t, nil
}

// ParseMonth accepts "2019.01" or "2019年1月" and anchors to the first day.
func ParseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	parts := nonDigitRe.Split(s, -1)
	if len(parts) < 2 {
		return time.Time{}, common.NewFormatError("month", s, "YYYY.MM")
	}
	t, err := time.Parse(DateLayout, parts[0]+"-"+pad2(parts[1])+"-01")
	if err != nil {
		return time.Time{}, common.NewFormatError("month", s, "YYYY.MM")
	}
	return t, nil
}

// AddMonths shifts t by n calendar months, clamping the day to the target
// month's length.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysBetween returns ref - target in whole days (floored). Zero times are
// not handled here; callers check for absence first.
func DaysBetween(ref, target time.Time) int {
	return int(math.Floor(ref.Sub(target).Hours() / 24))
}

// DaysBetweenOrNaN is DaysBetween as a float, NaN when either side is absent.
func DaysBetweenOrNaN(ref, target time.Time) float64 {
	if ref.IsZero() || target.IsZero() {
		return math.NaN()
	}
	return float64(DaysBetween(ref, target))
}

// DateOnly truncates t to midnight in its location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
