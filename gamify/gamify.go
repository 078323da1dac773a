// Package gamify holds the pure arithmetic of the gamification ledger:
// streak progression, XP level thresholds, stat clamping and companion mood.
package gamify

import "time"

// NextStreak applies the streak law on session completion. No prior study day
// starts a streak at 1; studying again the same day leaves it unchanged;
// studying the day after the last study day extends it; any longer gap
// resets to 1.
func NextStreak(current int, lastStudyDate *time.Time, now time.Time) int {
	if lastStudyDate == nil {
		return 1
	}
	last := dayString(*lastStudyDate)
	today := dayString(now)
	yesterday := dayString(now.AddDate(0, 0, -1))
	switch last {
	case today:
		return current
	case yesterday:
		return current + 1
	default:
		return 1
	}
}

// XPForLevel is the amount of current XP needed to advance past the given
// level: 100 times the level squared.
func XPForLevel(level int) int {
	return 100 * level * level
}

// ApplyLevelUps raises level while currentXP meets the threshold and returns
// the new level. XP is not consumed; the ledger keeps a running counter.
func ApplyLevelUps(level, currentXP int) int {
	if level < 1 {
		level = 1
	}
	for currentXP >= XPForLevel(level) {
		level++
	}
	return level
}

// Clamp bounds v to [0,100], the valid range for companion stats.
func Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Mood derives the companion's mood from its current stats.
func Mood(happiness, energy int) string {
	switch {
	case happiness > 80 && energy > 50:
		return "excited"
	case happiness > 50:
		return "happy"
	case energy < 30:
		return "tired"
	default:
		return "normal"
	}
}

func dayString(t time.Time) string {
	return t.Format("2006-01-02")
}
