package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
)

var (
	// ErrTokenNotFound is returned when no reset token matches the lookup.
	ErrTokenNotFound = errors.New("reset token not found")
	// ErrTokenExpired is returned when the matching token's expiry has passed.
	ErrTokenExpired = errors.New("reset token expired")
	// ErrTokenUsed is returned when the matching token was already consumed.
	ErrTokenUsed = errors.New("reset token already used")
)

// ResetTokenRepository manages the password-reset token lifecycle.
//
// A token moves from issued to consumed exactly once, or lapses when its
// expiry passes. Issue guarantees at most one currently valid token per email
// by invalidating all prior unused tokens in the same transaction that inserts
// the new row.
type ResetTokenRepository interface {
	Issue(ctx context.Context, email, token string, expiresAt time.Time) (*models.PasswordResetToken, error)
	FindValid(ctx context.Context, email, token string) (*models.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id int64) error
	SweepExpired(ctx context.Context) (int64, error)
}

type resetTokenRepository struct {
	db *gorm.DB
}

// NewResetTokenRepository creates a new ResetTokenRepository instance.
func NewResetTokenRepository(db *gorm.DB) ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

func (r *resetTokenRepository) Issue(ctx context.Context, email, token string, expiresAt time.Time) (*models.PasswordResetToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := &models.PasswordResetToken{
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	// Invalidate-then-insert must be atomic: a failure in between would
	// leave the email with no valid token, and an interleaved concurrent
	// Issue could leave it with two.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.PasswordResetToken{}).
			Where("LOWER(email) = ? AND used = ?", email, false).
			Update("used", true).Error
		if err != nil {
			return err
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue reset token: %w", err)
	}
	return row, nil
}

func (r *resetTokenRepository) FindValid(ctx context.Context, email, token string) (*models.PasswordResetToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	token = strings.TrimSpace(token)

	var row models.PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND token = ?", email, token).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}

	// Distinguish the failure kinds for logging; the handler collapses them
	// into one response.
	if row.Used {
		return nil, ErrTokenUsed
	}
	if !row.ExpiresAt.After(time.Now()) {
		return nil, ErrTokenExpired
	}
	return &row, nil
}

func (r *resetTokenRepository) MarkUsed(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.PasswordResetToken{}).
		Where("id = ?", id).
		Update("used", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark reset token %d used: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (r *resetTokenRepository) SweepExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR used = ?", time.Now(), true).
		Delete(&models.PasswordResetToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to sweep reset tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
