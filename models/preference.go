package models

import "time"

// Preference stores per-user display settings. Absent rows fall back to
// defaults at the API layer.
type Preference struct {
	ID                uint      `gorm:"primaryKey" json:"-"`
	UserID            uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Theme             string    `gorm:"size:32;default:'light'" json:"theme"`
	Timezone          string    `gorm:"size:64;default:'UTC'" json:"timezone"`
	FontSize          string    `gorm:"size:16;default:'medium'" json:"font_size"`
	AnimationsEnabled bool      `gorm:"default:true" json:"animations_enabled"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}
