package models

import "time"

// DailyChallenge is a small XP-rewarded task that expires 24 hours after it
// is drawn. At most one unexpired challenge exists per user at a time.
type DailyChallenge struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"size:255" json:"description"`
	XP          int        `gorm:"column:xp;not null" json:"xp"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	ExpiresAt   time.Time  `gorm:"index;not null" json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
