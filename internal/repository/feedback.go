package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
)

// ErrFeedbackNotFound is returned when no feedback row matches the id.
var ErrFeedbackNotFound = errors.New("feedback not found")

// FeedbackRepository persists feedback forum entries.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	ListAll(ctx context.Context) ([]models.Feedback, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new FeedbackRepository instance.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) ListAll(ctx context.Context) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&feedback).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}

func (r *feedbackRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Feedback{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return count, nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Feedback{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete feedback %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}
