package models

import "time"

// StudyBlock is a time-boxed study entry on a user's daily schedule.
// Subject is stored by name rather than id; study blocks survive subject
// deletion and matching elsewhere is by exact name.
type StudyBlock struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Subject   string    `gorm:"size:128;not null" json:"subject"`
	Topic     string    `gorm:"size:255;not null" json:"topic"`
	StartTime time.Time `gorm:"index;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Priority  string    `gorm:"size:16;default:'medium'" json:"priority"`
	Completed bool      `gorm:"default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DurationMinutes is derived from the block bounds and never persisted.
func (b *StudyBlock) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime) / time.Minute)
}
