package gamify

import (
	"testing"
	"time"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2024, 5, 20, 14, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)
	today := now.Add(-2 * time.Hour)

	tests := []struct {
		name    string
		current int
		last    *time.Time
		want    int
	}{
		{"first session ever", 0, nil, 1},
		{"studied yesterday", 4, &yesterday, 5},
		{"already studied today", 4, &today, 4},
		{"gap resets", 9, &lastWeek, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStreak(tt.current, tt.last, now); got != tt.want {
				t.Errorf("NextStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextStreakMonthBoundary(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	last := time.Date(2024, 2, 29, 22, 0, 0, 0, time.UTC)
	if got := NextStreak(2, &last, now); got != 3 {
		t.Errorf("NextStreak() over month boundary = %d, want 3", got)
	}
}

func TestXPForLevel(t *testing.T) {
	for level, want := range map[int]int{1: 100, 2: 400, 3: 900, 5: 2500} {
		if got := XPForLevel(level); got != want {
			t.Errorf("XPForLevel(%d) = %d, want %d", level, got, want)
		}
	}
}

func TestApplyLevelUps(t *testing.T) {
	tests := []struct {
		name      string
		level, xp int
		want      int
	}{
		{"below threshold", 1, 99, 1},
		{"exact threshold", 1, 100, 2},
		{"two levels at once", 1, 400, 3},
		{"already high", 3, 500, 3},
		{"zero level normalized", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyLevelUps(tt.level, tt.xp); got != tt.want {
				t.Errorf("ApplyLevelUps(%d, %d) = %d, want %d", tt.level, tt.xp, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-5) != 0 || Clamp(130) != 100 || Clamp(42) != 42 {
		t.Error("Clamp() out of contract")
	}
}

func TestMood(t *testing.T) {
	tests := []struct {
		happiness, energy int
		want              string
	}{
		{90, 60, "excited"},
		{90, 50, "happy"}, // energy not above 50
		{60, 10, "happy"}, // happiness wins over tiredness
		{40, 10, "tired"},
		{40, 40, "normal"},
		{81, 51, "excited"},
	}
	for _, tt := range tests {
		if got := Mood(tt.happiness, tt.energy); got != tt.want {
			t.Errorf("Mood(%d, %d) = %s, want %s", tt.happiness, tt.energy, got, tt.want)
		}
	}
}
