// Package planner holds the pure arithmetic behind the revision planner:
// the fixed forgetting-curve schedule and suggestion date rules.
package planner

import "time"

// The spaced schedule follows the classic forgetting-curve checkpoints.
// Early reviews matter most, so the first two slots are high priority.
var (
	spacedOffsets    = []int{1, 3, 7, 14, 30}
	spacedPriorities = []string{"high", "high", "medium", "medium", "low"}
)

// Slot is one planned review: a calendar date and a priority.
type Slot struct {
	ReviewDate time.Time
	Priority   string
}

// SpacedSchedule returns the five review slots for material studied on the
// given day: +1, +3, +7, +14 and +30 days, priorities high, high, medium,
// medium, low, in that order. Dates are truncated to midnight in from's
// location so they map cleanly onto a DATE column.
func SpacedSchedule(from time.Time) []Slot {
	base := Midnight(from)
	slots := make([]Slot, 0, len(spacedOffsets))
	for i, days := range spacedOffsets {
		slots = append(slots, Slot{
			ReviewDate: base.AddDate(0, 0, days),
			Priority:   spacedPriorities[i],
		})
	}
	return slots
}

// SuggestionDate is the review date for automatically suggested revisions:
// the day after the reference day.
func SuggestionDate(from time.Time) time.Time {
	return Midnight(from).AddDate(0, 0, 1)
}

// SuggestionPriority applies to all automatically suggested revisions.
const SuggestionPriority = "medium"

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil counts whole calendar days from `from` to `to`, negative when the
// target day is already past.
func DaysUntil(from, to time.Time) int {
	return int(Midnight(to).Sub(Midnight(from)) / (24 * time.Hour))
}
