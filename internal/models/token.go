// Package models contains data models for the FinanceU backend.
package models

import "time"

// PasswordResetToken is a single-use reset code issued for an email address.
//
// A token is valid while Used is false and ExpiresAt is in the future.
// Issuing a new token for an email invalidates every prior unused one, so at
// most one valid token exists per email at any time.
type PasswordResetToken struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"not null;index"`
	Token     string    `json:"-" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	Used      bool      `json:"used" gorm:"not null;default:false"`
}

// TableName returns the database table name for the PasswordResetToken model.
func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// Valid reports whether the token is still usable at the given instant.
func (t *PasswordResetToken) Valid(now time.Time) bool {
	return !t.Used && t.ExpiresAt.After(now)
}
