package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Subject represents a course of study tracked chapter by chapter.
type Subject struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"index;not null" json:"user_id"`
	Name              string    `gorm:"size:128;not null" json:"name"`
	Color             string    `gorm:"size:32" json:"color"`
	TotalChapters     int       `gorm:"not null" json:"total_chapters"`
	CompletedChapters int       `gorm:"not null;default:0" json:"completed_chapters"`
	Progress          int       `gorm:"-" json:"progress"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AfterFind derives the completion percentage so every read carries it.
func (s *Subject) AfterFind(tx *gorm.DB) error {
	s.Progress = SubjectProgress(s.CompletedChapters, s.TotalChapters)
	return nil
}

// SubjectProgress returns round(100*completed/total), or 0 when total is not positive.
func SubjectProgress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
