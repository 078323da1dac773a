package planner

import (
	"testing"
	"time"
)

func TestSpacedSchedule(t *testing.T) {
	from := time.Date(2024, 1, 1, 15, 42, 7, 0, time.UTC)
	slots := SpacedSchedule(from)

	if len(slots) != 5 {
		t.Fatalf("SpacedSchedule() returned %d slots, want 5", len(slots))
	}

	wantDates := []string{"2024-01-02", "2024-01-04", "2024-01-08", "2024-01-15", "2024-01-31"}
	wantPriorities := []string{"high", "high", "medium", "medium", "low"}

	for i, slot := range slots {
		if got := slot.ReviewDate.Format("2006-01-02"); got != wantDates[i] {
			t.Errorf("slot %d date = %s, want %s", i, got, wantDates[i])
		}
		if slot.Priority != wantPriorities[i] {
			t.Errorf("slot %d priority = %s, want %s", i, slot.Priority, wantPriorities[i])
		}
		if h, m, s := slot.ReviewDate.Clock(); h != 0 || m != 0 || s != 0 {
			t.Errorf("slot %d not truncated to midnight: %v", i, slot.ReviewDate)
		}
	}
}

func TestSpacedScheduleCrossesMonthAndYear(t *testing.T) {
	from := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)
	slots := SpacedSchedule(from)
	if got := slots[4].ReviewDate.Format("2006-01-02"); got != "2025-01-14" {
		t.Errorf("+30d over year boundary = %s, want 2025-01-14", got)
	}
}

func TestSuggestionDate(t *testing.T) {
	from := time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)
	if got := SuggestionDate(from).Format("2006-01-02"); got != "2024-02-01" {
		t.Errorf("SuggestionDate() = %s, want 2024-02-01", got)
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day", date(2024, 3, 10), time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), 0},
		{"tomorrow", time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), date(2024, 3, 11), 1},
		{"past", date(2024, 3, 10), date(2024, 3, 8), -2},
		{"week out", date(2024, 3, 10), date(2024, 3, 17), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.from, tt.to); got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
