package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

type InsightType string

const (
	InsightSuccess     InsightType = "success"
	InsightWarning     InsightType = "warning"
	InsightInfo        InsightType = "info"
	InsightAchievement InsightType = "achievement"
)

// Rule identifiers name the condition that produced an insight. They are
// stable and safe to key translations on.
const (
	RuleNoMeals        = "no-meals"
	RuleFirstMeal      = "first-meal"
	RulePerfectDay     = "perfect-day"
	RuleGoalReached    = "goal-reached"
	RuleNearGoal       = "near-goal"
	RuleExceededGoal   = "exceeded-goal"
	RuleBelowGoal      = "below-goal"
	RuleWaterReached   = "water-reached"
	RuleWaterReminder  = "water-reminder"
	RuleHighProtein    = "high-protein"
	RuleBalancedMacros = "balanced-macros"
	RuleLongStreak     = "long-streak"
	RuleStreak         = "streak"
)

type Nutrient string

const (
	NutrientCalories Nutrient = "calories"
	NutrientProtein  Nutrient = "protein"
	NutrientCarbs    Nutrient = "carbs"
	NutrientFat      Nutrient = "fat"
	NutrientWater    Nutrient = "water"
)

// Insight is one signal about the current day. Message is empty until a
// locale formatter fills it from Rule and the structured fields.
type Insight struct {
	ID        string      `json:"id"`
	Type      InsightType `json:"type"`
	Rule      string      `json:"rule"`
	Nutrient  Nutrient    `json:"nutrient,omitempty"`
	Percent   int         `json:"percent,omitempty"`
	Current   float64     `json:"current,omitempty"`
	Goal      float64     `json:"goal,omitempty"`
	Streak    int         `json:"streak,omitempty"`
	Icon      string      `json:"icon,omitempty"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
}

type InsightInput struct {
	TotalMacros   model.Macros
	Water         float64
	Goals         model.DailyGoals
	MealsCount    int
	CurrentStreak int
	Now           time.Time
}

const (
	nearGoalLow        = 85
	waterReminderBelow = 80
	highProteinAbove   = 120
	balancedVariance   = 30
	balancedMinMeals   = 3
	streakTier         = 7
	longStreakTier     = 30
)

// GenerateInsights evaluates the insight rules in order. With no meals it
// returns a single info insight and nothing else.
func GenerateInsights(in InsightInput) []Insight {
	b := insightBuilder{now: in.Now}

	if in.MealsCount == 0 {
		b.add(Insight{Type: InsightInfo, Rule: RuleNoMeals, Icon: "📝"})
		return b.out
	}

	if in.MealsCount == 1 {
		b.add(Insight{Type: InsightSuccess, Rule: RuleFirstMeal, Icon: "🎉"})
	}

	p := CalculateGoalsProgress(in.TotalMacros, in.Water, in.Goals)
	if AreGoalsMet(p) {
		b.add(Insight{Type: InsightAchievement, Rule: RulePerfectDay, Icon: "🏆"})
	}

	b.nutrient(NutrientCalories, p.Calories, in.TotalMacros.Calories, in.Goals.Calories)
	b.nutrient(NutrientProtein, p.Protein, in.TotalMacros.Protein, in.Goals.Protein)

	switch {
	case onTarget(p.Water):
		b.add(Insight{Type: InsightSuccess, Rule: RuleWaterReached, Nutrient: NutrientWater, Percent: p.Water, Current: in.Water, Goal: in.Goals.Water, Icon: "💧"})
	case p.Water < waterReminderBelow:
		b.add(Insight{Type: InsightInfo, Rule: RuleWaterReminder, Nutrient: NutrientWater, Percent: p.Water, Current: in.Water, Goal: in.Goals.Water, Icon: "💧"})
	}

	if p.Protein > highProteinAbove {
		b.add(Insight{Type: InsightInfo, Rule: RuleHighProtein, Nutrient: NutrientProtein, Percent: p.Protein, Current: in.TotalMacros.Protein, Goal: in.Goals.Protein, Icon: "🥩"})
	}

	variance := absInt(p.Protein-100) + absInt(p.Carbs-100) + absInt(p.Fat-100)
	if variance < balancedVariance && in.MealsCount >= balancedMinMeals {
		b.add(Insight{Type: InsightSuccess, Rule: RuleBalancedMacros, Icon: "⚖️"})
	}

	switch {
	case in.CurrentStreak >= longStreakTier:
		b.add(Insight{Type: InsightAchievement, Rule: RuleLongStreak, Streak: in.CurrentStreak, Icon: "🔥"})
	case in.CurrentStreak >= streakTier:
		b.add(Insight{Type: InsightSuccess, Rule: RuleStreak, Streak: in.CurrentStreak, Icon: "🔥"})
	}

	return b.out
}

type insightBuilder struct {
	now time.Time
	out []Insight
}

func (b *insightBuilder) add(in Insight) {
	in.ID = uuid.NewString()
	in.Timestamp = b.now
	b.out = append(b.out, in)
}

func (b *insightBuilder) nutrient(n Nutrient, percent int, current, goal float64) {
	in := Insight{Nutrient: n, Percent: percent, Current: current, Goal: goal}
	switch {
	case onTarget(percent):
		in.Type, in.Rule, in.Icon = InsightSuccess, RuleGoalReached, "🎯"
	case percent >= nearGoalLow && percent < onTargetLow:
		in.Type, in.Rule, in.Icon = InsightInfo, RuleNearGoal, "📊"
	case percent > onTargetHigh:
		in.Type, in.Rule, in.Icon = InsightWarning, RuleExceededGoal, "⚠️"
	default:
		in.Type, in.Rule, in.Icon = InsightWarning, RuleBelowGoal, "⚠️"
	}
	b.add(in)
}
