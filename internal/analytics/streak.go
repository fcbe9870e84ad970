package analytics

import (
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

// streakThreshold is the per-metric progress a day needs to count toward a
// streak. It is looser than the on-target band used for perfect days.
const streakThreshold = 80

type StreakStats struct {
	Current       int  `json:"current"`
	Longest       int  `json:"longest"`
	TodayComplete bool `json:"todayComplete"`
}

// IsDayGoalMet reports whether date has meals and every metric reached 80%.
func IsDayGoalMet(history model.NutritionHistory, date string, goals model.DailyGoals) bool {
	day, ok := history[date]
	if !ok || !day.HasMeals() {
		return false
	}
	p := CalculateGoalsProgress(day.TotalMacros, day.Water, goals)
	for _, v := range p.Values() {
		if v < streakThreshold {
			return false
		}
	}
	return true
}

// CalculateCurrentStreak counts qualifying days backward from the most recent
// date that has meals. That date need not be today.
func CalculateCurrentStreak(history model.NutritionHistory, goals model.DailyGoals) int {
	dates := datesWithMeals(history)
	if len(dates) == 0 {
		return 0
	}

	streak := 0
	expected, _ := ParseDay(dates[len(dates)-1])
	for i := len(dates) - 1; i >= 0; i-- {
		key := dates[i]
		if key != FormatDay(expected) {
			break
		}
		if !IsDayGoalMet(history, key, goals) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

func CalculateLongestStreak(history model.NutritionHistory, goals model.DailyGoals) int {
	longest := 0
	running := 0
	var prev time.Time
	for _, key := range history.SortedDates() {
		if !IsDayGoalMet(history, key, goals) {
			running = 0
			continue
		}
		day, _ := ParseDay(key)
		if running > 0 && daysBetween(prev, day) == 1 {
			running++
		} else {
			running = 1
		}
		prev = day
		longest = max(longest, running)
	}
	return longest
}

// GetStreakStats combines both streak counts with a check of today's date.
func GetStreakStats(history model.NutritionHistory, goals model.DailyGoals, today time.Time) StreakStats {
	return StreakStats{
		Current:       CalculateCurrentStreak(history, goals),
		Longest:       CalculateLongestStreak(history, goals),
		TodayComplete: IsDayGoalMet(history, FormatDay(today), goals),
	}
}

// datesWithMeals returns day keys that hold at least one meal, ascending.
func datesWithMeals(history model.NutritionHistory) []string {
	all := history.SortedDates()
	out := make([]string, 0, len(all))
	for _, key := range all {
		if history[key].HasMeals() {
			out = append(out, key)
		}
	}
	return out
}
