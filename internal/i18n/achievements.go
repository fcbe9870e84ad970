package i18n

import (
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

type achievementText struct {
	title       [2]string
	description [2]string
}

var achievementTexts = map[string]achievementText{
	analytics.AchievementFirstMeal: {
		title:       [2]string{"Primeira Refeição", "First Meal"},
		description: [2]string{"Registre sua primeira refeição", "Log your first meal"},
	},
	analytics.AchievementStreak7: {
		title:       [2]string{"Sequência de 7 Dias", "7 Day Streak"},
		description: [2]string{"Mantenha 7 dias consecutivos", "Maintain a 7 day streak"},
	},
	analytics.AchievementStreak30: {
		title:       [2]string{"Mestre da Consistência", "Consistency Master"},
		description: [2]string{"30 dias consecutivos de tracking", "30 consecutive days of tracking"},
	},
	analytics.AchievementPerfectDay: {
		title:       [2]string{"Dia Perfeito", "Perfect Day"},
		description: [2]string{"Atinja todas as metas em um dia", "Hit all goals in one day"},
	},
	analytics.AchievementMeals100: {
		title:       [2]string{"Centenário", "Centurion"},
		description: [2]string{"Registre 100 refeições", "Log 100 meals"},
	},
	analytics.AchievementProteinWarrior: {
		title:       [2]string{"Guerreiro da Proteína", "Protein Warrior"},
		description: [2]string{"Atinja a meta de proteína 7 dias seguidos", "Hit protein goal 7 days in a row"},
	},
	analytics.AchievementHydrationHero: {
		title:       [2]string{"Herói da Hidratação", "Hydration Hero"},
		description: [2]string{"Beba 2L+ de água por 7 dias seguidos", "Drink 2L+ water for 7 days straight"},
	},
	analytics.AchievementBalanced: {
		title:       [2]string{"Mestre do Equilíbrio", "Balance Master"},
		description: [2]string{"Mantenha macros equilibrados por 5 dias", "Keep balanced macros for 5 days"},
	},
}

func AchievementTitle(l Locale, id string) string {
	t, ok := achievementTexts[id]
	if !ok {
		return id
	}
	return pick(l, t.title[0], t.title[1])
}

func AchievementDescription(l Locale, id string) string {
	t, ok := achievementTexts[id]
	if !ok {
		return ""
	}
	return pick(l, t.description[0], t.description[1])
}

func LocalizeAchievements(l Locale, list []analytics.Achievement) []analytics.Achievement {
	out := make([]analytics.Achievement, len(list))
	for i, a := range list {
		a.Title = AchievementTitle(l, a.ID)
		a.Description = AchievementDescription(l, a.ID)
		out[i] = a
	}
	return out
}

// CheckAchievements evaluates the achievement table and titles every entry
// in locale l.
func CheckAchievements(history model.NutritionHistory, streak int, l Locale, now time.Time) []analytics.Achievement {
	return LocalizeAchievements(l, analytics.CheckAchievements(history, streak, now))
}
