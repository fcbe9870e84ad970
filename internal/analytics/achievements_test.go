package analytics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

func unlocked(list []analytics.Achievement) map[string]bool {
	out := map[string]bool{}
	for _, a := range list {
		out[a.ID] = a.IsUnlocked
	}
	return out
}

func consecutive(start string, n int, build func(date string) model.DailyNutrition) []model.DailyNutrition {
	first, _ := analytics.ParseDay(start)
	out := make([]model.DailyNutrition, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, build(analytics.FormatDay(first.AddDate(0, 0, i))))
	}
	return out
}

func TestAchievementsEmptyHistory(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	got := analytics.CheckAchievements(model.NutritionHistory{}, 0, now)
	wantIDs := []string{"first-meal", "streak-7", "streak-30", "perfect-day", "meals-100", "protein-warrior", "hydration-hero", "balanced"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d achievements, got %d", len(wantIDs), len(got))
	}
	for i, a := range got {
		if a.ID != wantIDs[i] {
			t.Fatalf("achievement %d = %s, want %s", i, a.ID, wantIDs[i])
		}
		if a.IsUnlocked || a.Progress != 0 || a.UnlockedAt != nil {
			t.Fatalf("expected %s locked, got %+v", a.ID, a)
		}
		if a.Icon == "" {
			t.Fatalf("expected icon for %s", a.ID)
		}
	}
}

func TestAchievementsStreakThirty(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	got := analytics.CheckAchievements(model.NutritionHistory{}, 30, now)
	u := unlocked(got)
	if !u["streak-7"] || !u["streak-30"] {
		t.Fatalf("expected both streak achievements, got %v", u)
	}
	for _, a := range got {
		if a.ID == "streak-30" {
			if a.Progress != 100 || a.UnlockedAt == nil || !a.UnlockedAt.Equal(now) {
				t.Fatalf("unexpected unlocked achievement: %+v", a)
			}
		}
	}
}

func TestAchievementsFromHistory(t *testing.T) {
	t.Parallel()
	h := historyOf(consecutive("2026-03-01", 7, func(date string) model.DailyNutrition {
		// 30/41/28 caloric split
		return mkDay(date, 2.0, model.Macros{Calories: 970, Protein: 75, Carbs: 100, Fat: 30})
	})...)
	u := unlocked(analytics.CheckAchievements(h, 0, time.Now()))
	for _, id := range []string{"first-meal", "perfect-day", "protein-warrior", "hydration-hero", "balanced"} {
		if !u[id] {
			t.Fatalf("expected %s unlocked, got %v", id, u)
		}
	}
	if u["meals-100"] || u["streak-7"] {
		t.Fatalf("unexpected unlocks: %v", u)
	}
}

func TestProteinWarriorBreaksOnLatestDay(t *testing.T) {
	t.Parallel()
	days := consecutive("2026-03-01", 7, func(date string) model.DailyNutrition {
		return mkDay(date, 0, model.Macros{Calories: 500, Protein: 40})
	})
	days = append(days, mkDay("2026-03-08", 0, model.Macros{Calories: 300, Carbs: 60}))
	u := unlocked(analytics.CheckAchievements(historyOf(days...), 0, time.Now()))
	if u["protein-warrior"] {
		t.Fatalf("expected a protein-free latest day to break the run")
	}
}

func TestHydrationHeroIgnoresMeals(t *testing.T) {
	t.Parallel()
	h := historyOf(consecutive("2026-03-01", 7, func(date string) model.DailyNutrition {
		return mkDay(date, 2.5)
	})...)
	u := unlocked(analytics.CheckAchievements(h, 0, time.Now()))
	if !u["hydration-hero"] {
		t.Fatalf("expected water-only days to unlock hydration hero")
	}
	if u["first-meal"] {
		t.Fatalf("expected first-meal locked without meals")
	}
}

func TestCenturionAndBalancedCount(t *testing.T) {
	t.Parallel()
	h := model.NutritionHistory{}
	for i := 0; i < 10; i++ {
		date := fmt.Sprintf("2026-02-%02d", i+1)
		meals := make([]model.Macros, 10)
		for j := range meals {
			meals[j] = model.Macros{Calories: 200, Protein: 20}
		}
		h[date] = mkDay(date, 1, meals...)
	}
	u := unlocked(analytics.CheckAchievements(h, 0, time.Now()))
	if !u["meals-100"] {
		t.Fatalf("expected 100 meals to unlock centurion")
	}
	if u["balanced"] {
		t.Fatalf("expected protein-only days to not count as balanced")
	}
}
