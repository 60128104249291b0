// Package service contains the business logic for the FinanceU backend.
package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the rest of the platform was provisioned
// for. The per-call salt is baked into the hash output.
const bcryptCost = 10

// MinPasswordLength is the usability floor enforced before a plaintext ever
// reaches the hasher.
const MinPasswordLength = 6

// PasswordHasher provides one-way salted hashing for credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type bcryptHasher struct{}

// NewPasswordHasher creates a bcrypt-backed PasswordHasher.
func NewPasswordHasher() PasswordHasher {
	return &bcryptHasher{}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
