package render_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
	"github.com/WagnerRodrigues181/nutri-lens/internal/render"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

func TestDayRendersProgressAndInsights(t *testing.T) {
	t.Parallel()

	status := &service.DayStatus{
		Date: "2026-03-01",
		Meals: []model.Meal{{
			ID:        "3f2a9c1e-0000-4000-8000-000000000000",
			Name:      "Tapioca",
			Category:  model.CategoryBreakfast,
			Macros:    model.Macros{Calories: 300, Protein: 5, Carbs: 60, Fat: 4},
			Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local),
			Date:      "2026-03-01",
		}},
		TotalMacros: model.Macros{Calories: 300, Protein: 5, Carbs: 60, Fat: 4},
		Goals:       model.DefaultGoals(),
		Progress:    model.GoalsProgress{Calories: 15, Protein: 3, Carbs: 30, Fat: 6, Water: 120},
		Insights:    []analytics.Insight{{Icon: "🎉", Message: "First meal logged"}},
	}

	var buf bytes.Buffer
	if err := render.Day(&buf, status); err != nil {
		t.Fatalf("render day: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Tapioca", "3f2a9c1e", "15%", "[#.........]", "[##########]+", "First meal logged"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestJSONIsIndented(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := render.JSON(&buf, analytics.StreakStats{Current: 3, Longest: 5}); err != nil {
		t.Fatalf("render json: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"current\": 3") {
		t.Fatalf("unexpected json: %s", buf.String())
	}
}

func TestAchievementsShowsLockState(t *testing.T) {
	t.Parallel()

	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	var buf bytes.Buffer
	err := render.Achievements(&buf, []analytics.Achievement{
		{ID: "first-meal", Title: "First Step", IsUnlocked: true, Progress: 100, UnlockedAt: &when},
		{ID: "streak-7", Title: "Committed", Progress: 0},
	})
	if err != nil {
		t.Fatalf("render achievements: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "2026-03-01 12:00") || !strings.Contains(out, "locked") || !strings.Contains(out, "Committed") {
		t.Fatalf("unexpected achievements output:\n%s", out)
	}
}

func TestImportReportListsWarnings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := render.ImportReport(&buf, service.ImportReport{Days: 2, Inserted: 3, GoalVersions: 2, DryRun: true, Warnings: []string{"2026-03-01: totals recomputed from meals"}}); err != nil {
		t.Fatalf("render import report: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "dry run: imported 2 days: 3 meals inserted") || !strings.Contains(buf.String(), "2 goal versions") || !strings.Contains(buf.String(), "warning: 2026-03-01") {
		t.Fatalf("unexpected import report: %s", buf.String())
	}
}
