package models

import "time"

// RevisionPlan schedules one review of a topic on a given date. Plans are
// created singly, in spaced batches, or as automatic suggestions.
type RevisionPlan struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	SubjectID  uint      `gorm:"index;not null" json:"subject_id"`
	Topic      string    `gorm:"size:255;not null" json:"topic"`
	ReviewDate time.Time `gorm:"type:date;index;not null" json:"review_date"`
	Priority   string    `gorm:"size:16;default:'medium'" json:"priority"`
	Completed  bool      `gorm:"default:false" json:"completed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
