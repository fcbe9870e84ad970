package analytics

import (
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

// AchievementDef is one entry of the achievement table. Check is a pure
// predicate over the full history and the current streak.
type AchievementDef struct {
	ID    string                                              `json:"id"`
	Icon  string                                              `json:"icon"`
	Check func(history model.NutritionHistory, streak int) bool `json:"-"`
}

// Achievement is an evaluated AchievementDef. Title and Description are
// filled by a locale formatter.
type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	IsUnlocked  bool       `json:"isUnlocked"`
	Progress    int        `json:"progress"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

const (
	AchievementFirstMeal      = "first-meal"
	AchievementStreak7        = "streak-7"
	AchievementStreak30       = "streak-30"
	AchievementPerfectDay     = "perfect-day"
	AchievementMeals100       = "meals-100"
	AchievementProteinWarrior = "protein-warrior"
	AchievementHydrationHero  = "hydration-hero"
	AchievementBalanced       = "balanced"
)

// Achievements is evaluated in this order.
var Achievements = []AchievementDef{
	{ID: AchievementFirstMeal, Icon: "🍽️", Check: anyDayWithMeals},
	{ID: AchievementStreak7, Icon: "🔥", Check: func(_ model.NutritionHistory, streak int) bool { return streak >= 7 }},
	{ID: AchievementStreak30, Icon: "🏆", Check: func(_ model.NutritionHistory, streak int) bool { return streak >= 30 }},
	// Only data presence is checked, not the on-target band.
	{ID: AchievementPerfectDay, Icon: "⭐", Check: anyDayWithMeals},
	{ID: AchievementMeals100, Icon: "💯", Check: func(h model.NutritionHistory, _ int) bool { return h.MealCount() >= 100 }},
	{ID: AchievementProteinWarrior, Icon: "💪", Check: func(h model.NutritionHistory, _ int) bool {
		return recentRun(h, 7, func(d model.DailyNutrition) bool {
			return d.HasMeals() && d.TotalMacros.Protein > 0
		})
	}},
	{ID: AchievementHydrationHero, Icon: "💧", Check: func(h model.NutritionHistory, _ int) bool {
		return recentRun(h, 7, func(d model.DailyNutrition) bool { return d.Water >= 2 })
	}},
	{ID: AchievementBalanced, Icon: "⚖️", Check: func(h model.NutritionHistory, _ int) bool {
		n := 0
		for _, d := range h {
			if isBalancedDay(d) {
				n++
			}
		}
		return n >= 5
	}},
}

// CheckAchievements evaluates every definition. Unlocked entries carry now as
// their unlock time.
func CheckAchievements(history model.NutritionHistory, streak int, now time.Time) []Achievement {
	out := make([]Achievement, 0, len(Achievements))
	for _, def := range Achievements {
		a := Achievement{ID: def.ID, Icon: def.Icon}
		if def.Check(history, streak) {
			at := now
			a.IsUnlocked = true
			a.Progress = 100
			a.UnlockedAt = &at
		}
		out = append(out, a)
	}
	return out
}

func anyDayWithMeals(h model.NutritionHistory, _ int) bool {
	for _, d := range h {
		if d.HasMeals() {
			return true
		}
	}
	return false
}

// recentRun walks history newest first and reports whether the first n
// entries all satisfy ok. Calendar gaps between entries are not checked.
func recentRun(h model.NutritionHistory, n int, ok func(model.DailyNutrition) bool) bool {
	dates := h.SortedDates()
	run := 0
	for i := len(dates) - 1; i >= 0; i-- {
		if !ok(h[dates[i]]) {
			return false
		}
		run++
		if run >= n {
			return true
		}
	}
	return false
}

func isBalancedDay(d model.DailyNutrition) bool {
	if !d.HasMeals() {
		return false
	}
	protein, carbs, fat, total := macroKcal(d.TotalMacros)
	if total == 0 {
		return false
	}
	p := protein / total * 100
	c := carbs / total * 100
	f := fat / total * 100
	return p >= 25 && p <= 35 && c >= 35 && c <= 50 && f >= 20 && f <= 35
}
