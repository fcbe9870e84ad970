package i18n

import (
	"fmt"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
)

var nutrientNames = map[analytics.Nutrient][2]string{
	analytics.NutrientCalories: {"calorias", "calories"},
	analytics.NutrientProtein:  {"proteína", "protein"},
	analytics.NutrientCarbs:    {"carboidratos", "carbs"},
	analytics.NutrientFat:      {"gordura", "fat"},
	analytics.NutrientWater:    {"água", "water"},
}

var nutrientUnits = map[analytics.Nutrient]string{
	analytics.NutrientCalories: "kcal",
	analytics.NutrientProtein:  "g",
	analytics.NutrientCarbs:    "g",
	analytics.NutrientFat:      "g",
	analytics.NutrientWater:    "L",
}

func NutrientName(l Locale, n analytics.Nutrient) string {
	names, ok := nutrientNames[n]
	if !ok {
		return string(n)
	}
	return pick(l, names[0], names[1])
}

// InsightMessage renders in as a sentence in locale l.
func InsightMessage(l Locale, in analytics.Insight) string {
	name := NutrientName(l, in.Nutrient)
	amount := formatAmount(in.Nutrient, in.Current, in.Goal)

	switch in.Rule {
	case analytics.RuleNoMeals:
		return pick(l,
			"Ainda não há refeições registradas hoje. Que tal começar agora?",
			"No meals logged today. How about starting now?")
	case analytics.RuleFirstMeal:
		return pick(l,
			"Primeira refeição do dia registrada!",
			"First meal of the day logged!")
	case analytics.RulePerfectDay:
		return pick(l,
			"Dia perfeito! Todas as metas atingidas.",
			"Perfect day! Every goal reached.")
	case analytics.RuleGoalReached:
		return pick(l,
			fmt.Sprintf("Meta de %s atingida: %d%% (%s).", name, in.Percent, amount),
			fmt.Sprintf("%s goal reached: %d%% (%s).", capitalize(name), in.Percent, amount))
	case analytics.RuleNearGoal:
		return pick(l,
			fmt.Sprintf("Quase lá: %d%% da meta de %s (%s).", in.Percent, name, amount),
			fmt.Sprintf("Almost there: %d%% of your %s goal (%s).", in.Percent, name, amount))
	case analytics.RuleExceededGoal:
		return pick(l,
			fmt.Sprintf("Meta de %s ultrapassada em %d%% (%s).", name, in.Percent-100, amount),
			fmt.Sprintf("%s goal exceeded by %d%% (%s).", capitalize(name), in.Percent-100, amount))
	case analytics.RuleBelowGoal:
		return pick(l,
			fmt.Sprintf("Consumo baixo de %s: %d%% da meta (%s).", name, in.Percent, amount),
			fmt.Sprintf("Low %s intake: %d%% of goal (%s).", name, in.Percent, amount))
	case analytics.RuleWaterReached:
		return pick(l,
			fmt.Sprintf("Meta de água atingida (%s).", amount),
			fmt.Sprintf("Water goal reached (%s).", amount))
	case analytics.RuleWaterReminder:
		return pick(l,
			fmt.Sprintf("Lembre-se de beber mais água (%s).", amount),
			fmt.Sprintf("Remember to drink more water (%s).", amount))
	case analytics.RuleHighProtein:
		return pick(l,
			fmt.Sprintf("Proteína alta: %d%% da meta.", in.Percent),
			fmt.Sprintf("High protein: %d%% of goal.", in.Percent))
	case analytics.RuleBalancedMacros:
		return pick(l,
			"Macros equilibrados hoje!",
			"Balanced macros today!")
	case analytics.RuleLongStreak:
		return pick(l,
			fmt.Sprintf("Sequência de %d dias! Você é imparável!", in.Streak),
			fmt.Sprintf("%d day streak! You are unstoppable!", in.Streak))
	case analytics.RuleStreak:
		return pick(l,
			fmt.Sprintf("Sequência de %d dias. Continue assim!", in.Streak),
			fmt.Sprintf("%d day streak. Keep it up!", in.Streak))
	}
	return in.Rule
}

// LocalizeInsights returns a copy of list with every Message filled in.
func LocalizeInsights(l Locale, list []analytics.Insight) []analytics.Insight {
	out := make([]analytics.Insight, len(list))
	for i, in := range list {
		in.Message = InsightMessage(l, in)
		out[i] = in
	}
	return out
}

func formatAmount(n analytics.Nutrient, current, goal float64) string {
	unit := nutrientUnits[n]
	if n == analytics.NutrientWater {
		return fmt.Sprintf("%.1f/%.1f%s", current, goal, unit)
	}
	return fmt.Sprintf("%.0f/%.0f%s", current, goal, unit)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
