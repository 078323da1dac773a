package models

import "time"

// StudySession records one timed study sitting. Duration is in minutes and is
// written only when the session completes.
type StudySession struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	SubjectID *uint      `gorm:"index" json:"subject_id"`
	Duration  int        `gorm:"default:0" json:"duration"`
	XPEarned  int        `gorm:"column:xp_earned;default:0" json:"xp_earned"`
	Completed bool       `gorm:"default:false" json:"completed"`
	StartedAt time.Time  `gorm:"index;not null" json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	CreatedAt time.Time  `json:"created_at"`
}
