// Package models contains data models for the FinanceU backend.
package models

import "time"

// LessonProgress records a user's completion state for one lesson.
type LessonProgress struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	UserID      int64      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID    string     `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	User        User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name for the LessonProgress model.
func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// Lesson describes one catalog entry. The catalog is static for now; entries
// carry the tier required to open them.
type Lesson struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Pillar       string `json:"pillar"`
	RequiredTier Tier   `json:"requiredTier"`
}
