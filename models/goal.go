package models

import (
	"math"
	"time"
)

// Goal is a long-running objective split into ordered steps. Progress is the
// rounded percentage of completed steps and Completed mirrors progress == 100.
type Goal struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    time.Time  `json:"deadline"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	Progress    int        `gorm:"default:0" json:"progress"`
	Steps       []GoalStep `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"steps"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GoalStep belongs to exactly one goal.
type GoalStep struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GoalID    uint      `gorm:"index;not null" json:"goal_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Completed bool      `gorm:"default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// GoalProgress returns round(100*done/total) over the given steps, 0 when empty.
func GoalProgress(steps []GoalStep) int {
	if len(steps) == 0 {
		return 0
	}
	done := 0
	for _, s := range steps {
		if s.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(steps)) * 100))
}
