// Package models contains data models for the FinanceU backend.
package models

import "time"

// User represents a registered learner.
type User struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"not null"`
	PasswordHash   string    `json:"-" gorm:"column:password_hash;not null"`
	Name           string    `json:"name" gorm:"not null"`
	MembershipTier Tier      `json:"membershipTier" gorm:"column:membership_tier;not null;default:free"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// PublicUser is the client-facing shape of a user. It never carries the
// password hash.
type PublicUser struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	MembershipTier Tier      `json:"membershipTier"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// Public converts a stored user into its client-facing shape.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		MembershipTier: u.MembershipTier,
		CreatedAt:      u.CreatedAt,
	}
}
