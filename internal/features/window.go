package features

import "strings"

// Window is a lookback cutoff: a row is inside when its recency is at most
// Limit. NaN recency is never inside.
type Window struct {
	Name  string
	Limit float64
}

func (w Window) Contains(v float64) bool { return v <= w.Limit }

// DayWindows slice by days since an event.
var DayWindows = []Window{
	{"j1m", 30},
	{"j3m", 90},
	{"j6m", 180},
	{"j12m", 360},
	{"j24m", 720},
	{"lf", 99999},
}

// MonthWindows slice loan overdue events by months since the event.
var MonthWindows = []Window{
	{"j3m", 3},
	{"j6m", 6},
	{"j12m", 12},
	{"j24m", 24},
	{"lf", 99999},
}

// Key builds "<family>_<slices...>_<stat>_<window>", for example
// Key("pboc_ln", "rcrd_sum", w, "ustl1", "hs") = "pboc_ln_ustl1_hs_rcrd_sum_j1m".
func Key(family, stat string, w Window, slices ...string) string {
	parts := make([]string, 0, len(slices)+3)
	parts = append(parts, family)
	parts = append(parts, slices...)
	parts = append(parts, stat, w.Name)
	return strings.Join(parts, "_")
}

// Lifetime is the unbounded window used by the single-window keys.
var Lifetime = Window{"lf", 99999}
