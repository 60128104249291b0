// Package models contains data models for the FinanceU backend.
package models

import "time"

// Feedback is a forum entry submitted from the public feedback form.
type Feedback struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	FeedbackType string    `json:"feedback_type" gorm:"column:feedback_type;not null"`
	Message      string    `json:"message" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for the Feedback model.
func (Feedback) TableName() string {
	return "feedback"
}

// FeedbackTypes lists the accepted values for FeedbackType.
var FeedbackTypes = []string{"Bug Report", "Feature Request", "General Feedback", "Compliment"}

// ValidFeedbackType reports whether t is an accepted feedback type.
func ValidFeedbackType(t string) bool {
	for _, ft := range FeedbackTypes {
		if t == ft {
			return true
		}
	}
	return false
}
