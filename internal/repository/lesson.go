package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
)

// LessonRepository persists per-user lesson completion records.
type LessonRepository interface {
	GetUserProgress(ctx context.Context, userID int64) ([]models.LessonProgress, error)
	MarkComplete(ctx context.Context, userID int64, lessonID string) error
	CountCompleted(ctx context.Context, userID int64) (int64, error)
}

type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository creates a new LessonRepository instance.
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) GetUserProgress(ctx context.Context, userID int64) ([]models.LessonProgress, error) {
	var progress []models.LessonProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("lesson_id").
		Find(&progress).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get progress for user %d: %w", userID, err)
	}
	return progress, nil
}

func (r *lessonRepository) MarkComplete(ctx context.Context, userID int64, lessonID string) error {
	now := time.Now()
	row := models.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &now,
	}
	// Upsert on (user_id, lesson_id): re-completing a lesson refreshes the
	// timestamp instead of failing.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to mark lesson %s complete for user %d: %w", lessonID, userID, err)
	}
	return nil
}

func (r *lessonRepository) CountCompleted(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LessonProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count completed lessons for user %d: %w", userID, err)
	}
	return count, nil
}
