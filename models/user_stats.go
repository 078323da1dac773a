package models

import "time"

// UserStats is the per-user gamification ledger row: XP totals, level, and
// the consecutive-day study streak. One row per user, provisioned lazily.
type UserStats struct {
	ID            uint       `gorm:"primaryKey" json:"-"`
	UserID        uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Level         int        `gorm:"default:1" json:"level"`
	CurrentXP     int        `gorm:"column:current_xp;default:0" json:"current_xp"`
	TotalXP       int        `gorm:"column:total_xp;default:0" json:"total_xp"`
	StudyStreak   int        `gorm:"default:0" json:"study_streak"`
	LastStudyDate *time.Time `gorm:"type:date" json:"last_study_date"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}
