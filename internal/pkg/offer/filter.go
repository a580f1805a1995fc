package offer

import (
	"fmt"
	"time"
)

// TimeWindow is a coarse time-of-day bucket for departure preferences.
type TimeWindow int

const (
	WindowAny TimeWindow = iota
	// WindowMorning is midnight to noon, [00:00, 12:00).
	WindowMorning
	// WindowAfternoonEvening is noon to midnight, [12:00, 24:00).
	WindowAfternoonEvening
	// WindowEvening is 6pm to midnight, [18:00, 24:00).
	WindowEvening
)

var windowNames = map[TimeWindow]string{
	WindowAny:              "any",
	WindowMorning:          "morning",
	WindowAfternoonEvening: "afternoon_evening",
	WindowEvening:          "evening",
}

func (w TimeWindow) String() string {
	if name, ok := windowNames[w]; ok {
		return name
	}

	return fmt.Sprintf("time_window(%d)", int(w))
}

// ParseTimeWindow maps the wire name to a bucket. The empty string means
// no preference.
func ParseTimeWindow(name string) (TimeWindow, error) {
	switch name {
	case "", "any":
		return WindowAny, nil
	case "morning":
		return WindowMorning, nil
	case "afternoon_evening":
		return WindowAfternoonEvening, nil
	case "evening":
		return WindowEvening, nil
	}

	return WindowAny, fmt.Errorf("unknown time window %q", name)
}

// Matches reports whether a local time-of-day falls inside the bucket.
// Midnight belongs to morning, 23:59:59 to both afternoon_evening and
// evening.
func (w TimeWindow) Matches(t time.Time) bool {
	switch w {
	case WindowMorning:
		return t.Hour() < 12
	case WindowAfternoonEvening:
		return t.Hour() >= 12
	case WindowEvening:
		return t.Hour() >= 18
	default:
		return true
	}
}

// IsDirect reports whether both journeys consist of a single segment.
func IsDirect(o Offer) bool {
	return len(o.Outbound.Segments) == 1 && len(o.Return.Segments) == 1
}

// MatchesTimePreference checks the first-segment departure time of each
// journey against its bucket; both must match independently.
func MatchesTimePreference(o Offer, departure, ret TimeWindow) bool {
	return departure.Matches(o.Outbound.DepartureAt()) &&
		ret.Matches(o.Return.DepartureAt())
}

// Filter keeps offers that satisfy the direct-only constraint and both
// time-of-day preferences, preserving input order. Direct-only is applied
// first so a connecting offer is rejected regardless of its times.
func Filter(offers []Offer, directOnly bool, departure, ret TimeWindow) []Offer {
	results := make([]Offer, 0, len(offers))

	for _, o := range offers {
		if directOnly && !IsDirect(o) {
			continue
		}

		if !MatchesTimePreference(o, departure, ret) {
			continue
		}

		results = append(results, o)
	}

	return results
}
