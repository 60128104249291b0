package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
	"github.com/imLaanui/Financeu-platform-sub000/internal/repository"
)

// The curriculum is organized into pillars of eight lessons each. Lesson IDs
// are "<pillar>_<slug>", e.g. "pillar3_budgeting-basics".
const (
	pillarCount      = 11
	lessonsPerPillar = 8
	totalLessons     = pillarCount * lessonsPerPillar
)

// lessonCatalog is the static lesson catalog. Populated as content ships.
var lessonCatalog = []models.Lesson{}

// LessonWithAccess is a catalog entry annotated with whether the caller's
// tier can open it.
type LessonWithAccess struct {
	models.Lesson
	Accessible bool `json:"accessible"`
}

// PillarProgress summarizes completion within one pillar.
type PillarProgress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// UserProgressSummary is the admin-dashboard aggregation for one user.
type UserProgressSummary struct {
	CompletedLessons  int                       `json:"completedLessons"`
	TotalLessons      int                       `json:"totalLessons"`
	OverallPercentage int                       `json:"overallPercentage"`
	PillarProgress    map[string]PillarProgress `json:"pillarProgress"`
	CurrentPillar     string                    `json:"currentPillar,omitempty"`
	CurrentLesson     string                    `json:"currentLesson,omitempty"`
	LastActivity      *time.Time                `json:"lastActivity,omitempty"`
}

// LessonService exposes lesson progress tracking and catalog access.
type LessonService interface {
	Progress(ctx context.Context, userID int64) ([]models.LessonProgress, error)
	Complete(ctx context.Context, userID int64, lessonID string) error
	CompletedCount(ctx context.Context, userID int64) (int64, error)
	Catalog(tier models.Tier) []LessonWithAccess
	Summarize(progress []models.LessonProgress) UserProgressSummary
}

type lessonService struct {
	lessonRepo repository.LessonRepository
}

// NewLessonService creates a new LessonService instance.
func NewLessonService(lessonRepo repository.LessonRepository) LessonService {
	return &lessonService{lessonRepo: lessonRepo}
}

func (s *lessonService) Progress(ctx context.Context, userID int64) ([]models.LessonProgress, error) {
	return s.lessonRepo.GetUserProgress(ctx, userID)
}

func (s *lessonService) Complete(ctx context.Context, userID int64, lessonID string) error {
	return s.lessonRepo.MarkComplete(ctx, userID, lessonID)
}

func (s *lessonService) CompletedCount(ctx context.Context, userID int64) (int64, error) {
	return s.lessonRepo.CountCompleted(ctx, userID)
}

func (s *lessonService) Catalog(tier models.Tier) []LessonWithAccess {
	lessons := make([]LessonWithAccess, 0, len(lessonCatalog))
	for _, lesson := range lessonCatalog {
		lessons = append(lessons, LessonWithAccess{
			Lesson:     lesson,
			Accessible: models.TierAtLeast(tier, lesson.RequiredTier),
		})
	}
	return lessons
}

// Summarize folds raw progress rows into the per-pillar shape the admin
// dashboard renders.
func (s *lessonService) Summarize(progress []models.LessonProgress) UserProgressSummary {
	summary := UserProgressSummary{
		TotalLessons:   totalLessons,
		PillarProgress: make(map[string]PillarProgress, pillarCount),
	}

	perPillar := make(map[string]int)
	for _, p := range progress {
		if !p.Completed {
			continue
		}
		summary.CompletedLessons++
		perPillar[pillarOf(p.LessonID)]++

		if p.CompletedAt != nil && (summary.LastActivity == nil || p.CompletedAt.After(*summary.LastActivity)) {
			summary.LastActivity = p.CompletedAt
			summary.CurrentLesson = p.LessonID
			summary.CurrentPillar = pillarOf(p.LessonID)
		}
	}

	for i := 1; i <= pillarCount; i++ {
		pillar := fmt.Sprintf("pillar%d", i)
		completed := perPillar[pillar]
		summary.PillarProgress[pillar] = PillarProgress{
			Completed:  completed,
			Total:      lessonsPerPillar,
			Percentage: completed * 100 / lessonsPerPillar,
		}
	}

	summary.OverallPercentage = summary.CompletedLessons * 100 / totalLessons
	return summary
}

func pillarOf(lessonID string) string {
	if i := strings.IndexByte(lessonID, '_'); i > 0 {
		return lessonID[:i]
	}
	return lessonID
}
