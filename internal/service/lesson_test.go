package service

import (
	"testing"
	"time"

	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
)

func completedAt(t time.Time) *time.Time {
	return &t
}

func TestSummarize_Empty(t *testing.T) {
	svc := NewLessonService(nil)

	summary := svc.Summarize(nil)

	if summary.CompletedLessons != 0 {
		t.Errorf("CompletedLessons = %d, want 0", summary.CompletedLessons)
	}
	if summary.TotalLessons != 88 {
		t.Errorf("TotalLessons = %d, want 88", summary.TotalLessons)
	}
	if summary.OverallPercentage != 0 {
		t.Errorf("OverallPercentage = %d, want 0", summary.OverallPercentage)
	}
	if len(summary.PillarProgress) != 11 {
		t.Errorf("pillar count = %d, want 11", len(summary.PillarProgress))
	}
	for pillar, p := range summary.PillarProgress {
		if p.Total != 8 {
			t.Errorf("%s total = %d, want 8", pillar, p.Total)
		}
	}
	if summary.LastActivity != nil || summary.CurrentLesson != "" {
		t.Error("no activity expected for empty progress")
	}
}

func TestSummarize_AggregatesByPillar(t *testing.T) {
	svc := NewLessonService(nil)

	earlier := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	later := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	summary := svc.Summarize([]models.LessonProgress{
		{LessonID: "pillar1_intro", Completed: true, CompletedAt: completedAt(earlier)},
		{LessonID: "pillar1_goals", Completed: true, CompletedAt: completedAt(later)},
		{LessonID: "pillar3_budgeting", Completed: true, CompletedAt: completedAt(earlier)},
		{LessonID: "pillar3_skipped", Completed: false},
	})

	if summary.CompletedLessons != 3 {
		t.Errorf("CompletedLessons = %d, want 3", summary.CompletedLessons)
	}
	if got := summary.PillarProgress["pillar1"]; got.Completed != 2 || got.Percentage != 25 {
		t.Errorf("pillar1 = %+v, want 2 completed at 25%%", got)
	}
	if got := summary.PillarProgress["pillar3"]; got.Completed != 1 {
		t.Errorf("pillar3 = %+v, want 1 completed", got)
	}
	if got := summary.PillarProgress["pillar2"]; got.Completed != 0 {
		t.Errorf("pillar2 = %+v, want 0 completed", got)
	}
	if summary.OverallPercentage != 3*100/88 {
		t.Errorf("OverallPercentage = %d, want %d", summary.OverallPercentage, 3*100/88)
	}

	// The most recent completion drives the current-position fields.
	if summary.CurrentLesson != "pillar1_goals" || summary.CurrentPillar != "pillar1" {
		t.Errorf("current = %s/%s, want pillar1/pillar1_goals", summary.CurrentPillar, summary.CurrentLesson)
	}
	if summary.LastActivity == nil || !summary.LastActivity.Equal(later) {
		t.Errorf("LastActivity = %v, want %v", summary.LastActivity, later)
	}
}
