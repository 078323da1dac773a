package models

import "time"

// Achievement is a per-user badge. Unlocking is monotonic: once UnlockedAt is
// set it is never cleared or overwritten.
type Achievement struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Name        string     `gorm:"size:128;not null" json:"name"`
	Description string     `gorm:"size:255" json:"description"`
	Unlocked    bool       `gorm:"default:false" json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
