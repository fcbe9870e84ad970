package analytics

import "github.com/WagnerRodrigues181/nutri-lens/internal/model"

// Accuracy scores a progress vector from 0 to 100. Each metric loses one
// point per percentage point away from 100, in either direction.
func Accuracy(p model.GoalsProgress) int {
	values := p.Values()
	sum := 0
	for _, v := range values {
		sum += max(0, 100-absInt(v-100))
	}
	score := roundInt(float64(sum) / float64(len(values)))
	return min(100, max(0, score))
}

// CalculateDayAccuracy scores one day of history. A missing day scores 0.
func CalculateDayAccuracy(history model.NutritionHistory, date string, goals model.DailyGoals) int {
	day, ok := history[date]
	if !ok {
		return 0
	}
	return Accuracy(CalculateGoalsProgress(day.TotalMacros, day.Water, goals))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
