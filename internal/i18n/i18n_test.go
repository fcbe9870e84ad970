package i18n_test

import (
	"strings"
	"testing"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
	"github.com/WagnerRodrigues181/nutri-lens/internal/i18n"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestParseLocale(t *testing.T) {
	t.Parallel()
	cases := map[string]i18n.Locale{
		"":      i18n.PtBR,
		"pt-BR": i18n.PtBR,
		"pt_br": i18n.PtBR,
		"EN-us": i18n.EnUS,
		"en":    i18n.EnUS,
	}
	for in, want := range cases {
		got, err := i18n.ParseLocale(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q = %s, want %s", in, got, want)
		}
	}
	if _, err := i18n.ParseLocale("fr-FR"); err == nil {
		t.Fatalf("expected unsupported locale error")
	}
}

func messages(l i18n.Locale, in analytics.InsightInput) []analytics.Insight {
	in.Goals = model.DefaultGoals()
	in.Now = now
	return i18n.LocalizeInsights(l, analytics.GenerateInsights(in))
}

func find(list []analytics.Insight, kind analytics.InsightType, fragment string) bool {
	for _, in := range list {
		if in.Type == kind && strings.Contains(in.Message, fragment) {
			return true
		}
	}
	return false
}

func TestInsightMessages(t *testing.T) {
	t.Parallel()
	perfect := model.Macros{Calories: 2000, Protein: 150, Carbs: 200, Fat: 65}

	none := messages(i18n.PtBR, analytics.InsightInput{})
	if len(none) != 1 || !find(none, analytics.InsightInfo, "refeições registradas") {
		t.Fatalf("unexpected no-meal insights: %+v", none)
	}

	first := messages(i18n.PtBR, analytics.InsightInput{
		TotalMacros: model.Macros{Calories: 350, Protein: 45, Carbs: 5, Fat: 15},
		MealsCount:  1,
	})
	if !find(first, analytics.InsightSuccess, "Primeira refeição") {
		t.Fatalf("expected first meal message, got %+v", first)
	}

	day := messages(i18n.EnUS, analytics.InsightInput{TotalMacros: perfect, Water: 2, MealsCount: 3, CurrentStreak: 30})
	if !find(day, analytics.InsightAchievement, "Perfect day") {
		t.Fatalf("expected perfect day message, got %+v", day)
	}
	if !find(day, analytics.InsightAchievement, "30 day") {
		t.Fatalf("expected 30 day streak message, got %+v", day)
	}

	low := messages(i18n.PtBR, analytics.InsightInput{
		TotalMacros: model.Macros{Calories: 1000, Protein: 50, Carbs: 100, Fat: 30},
		Water:       1,
		MealsCount:  2,
	})
	if !find(low, analytics.InsightWarning, "calorias") {
		t.Fatalf("expected low calorie warning, got %+v", low)
	}
	if !find(low, analytics.InsightInfo, "água") {
		t.Fatalf("expected water reminder, got %+v", low)
	}

	high := messages(i18n.EnUS, analytics.InsightInput{
		TotalMacros: model.Macros{Calories: 2000, Protein: 200, Carbs: 200, Fat: 65},
		Water:       2,
		MealsCount:  3,
	})
	if !find(high, analytics.InsightInfo, "High protein") {
		t.Fatalf("expected high protein message, got %+v", high)
	}
}

func TestInsightMessageFormatsAmounts(t *testing.T) {
	t.Parallel()
	in := analytics.Insight{
		Rule:     analytics.RuleWaterReminder,
		Nutrient: analytics.NutrientWater,
		Current:  1.25,
		Goal:     2,
	}
	if got := i18n.InsightMessage(i18n.EnUS, in); got != "Remember to drink more water (1.2/2.0L)." && got != "Remember to drink more water (1.3/2.0L)." {
		t.Fatalf("unexpected message %q", got)
	}
	in = analytics.Insight{Rule: analytics.RuleExceededGoal, Nutrient: analytics.NutrientCalories, Percent: 112, Current: 2240, Goal: 2000}
	if got := i18n.InsightMessage(i18n.EnUS, in); got != "Calories goal exceeded by 12% (2240/2000kcal)." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCheckAchievementsLocalized(t *testing.T) {
	t.Parallel()
	h := model.NutritionHistory{
		"2026-03-01": {Date: "2026-03-01", Meals: []model.Meal{{ID: "m1", Name: "Toast"}}},
	}
	pt := i18n.CheckAchievements(h, 30, i18n.PtBR, now)
	en := i18n.CheckAchievements(h, 30, i18n.EnUS, now)
	if len(pt) != len(en) || len(pt) != len(analytics.Achievements) {
		t.Fatalf("expected one entry per definition")
	}
	if pt[0].Title != "Primeira Refeição" || en[0].Title != "First Meal" {
		t.Fatalf("unexpected titles %q / %q", pt[0].Title, en[0].Title)
	}
	if en[2].Title != "Consistency Master" || !en[2].IsUnlocked {
		t.Fatalf("expected unlocked consistency master, got %+v", en[2])
	}
	for i := range pt {
		if pt[i].ID != en[i].ID || pt[i].IsUnlocked != en[i].IsUnlocked {
			t.Fatalf("locale changed evaluation for %s", pt[i].ID)
		}
		if pt[i].Title == "" || en[i].Description == "" {
			t.Fatalf("missing text for %s", pt[i].ID)
		}
	}
}
