package models

import "time"

// Companion is the user's virtual study pet. Happiness and energy stay within
// [0,100]; every interaction stamps LastInteraction.
type Companion struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	UserID          uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Name            string    `gorm:"size:64;not null" json:"name"`
	Type            string    `gorm:"size:32;default:'owl'" json:"type"`
	Level           int       `gorm:"default:1" json:"level"`
	Happiness       int       `gorm:"default:80" json:"happiness"`
	Energy          int       `gorm:"default:100" json:"energy"`
	LastInteraction time.Time `json:"last_interaction"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}
