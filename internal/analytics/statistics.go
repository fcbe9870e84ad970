package analytics

import (
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

type DayScore struct {
	Date     string `json:"date"`
	Accuracy int    `json:"accuracy"`
}

type Statistics struct {
	AverageCalories  int      `json:"averageCalories"`
	AverageProtein   int      `json:"averageProtein"`
	AverageCarbs     int      `json:"averageCarbs"`
	AverageFat       int      `json:"averageFat"`
	AverageWater     float64  `json:"averageWater"`
	BestDay          DayScore `json:"bestDay"`
	WorstDay         DayScore `json:"worstDay"`
	GoalsMetCount    int      `json:"goalsMetCount"`
	TotalDaysTracked int      `json:"totalDaysTracked"`
}

// CalculateStatistics aggregates every tracked day in history.
func CalculateStatistics(history model.NutritionHistory, goals model.DailyGoals) Statistics {
	return aggregate(history, datesWithMeals(history), goals)
}

// CalculateStatisticsWindow aggregates tracked days within the last days
// calendar days ending at today. A non-positive days means no window.
func CalculateStatisticsWindow(history model.NutritionHistory, goals model.DailyGoals, today time.Time, days int) Statistics {
	if days <= 0 {
		return CalculateStatistics(history, goals)
	}
	end := CalendarDay(today)
	start := end.AddDate(0, 0, -(days - 1))

	var keys []string
	for _, key := range datesWithMeals(history) {
		d, _ := ParseDay(key)
		if d.Before(start) || d.After(end) {
			continue
		}
		keys = append(keys, key)
	}
	return aggregate(history, keys, goals)
}

func aggregate(history model.NutritionHistory, keys []string, goals model.DailyGoals) Statistics {
	if len(keys) == 0 {
		return Statistics{}
	}

	var totals model.Macros
	var water float64
	var stats Statistics
	for i, key := range keys {
		day := history[key]
		totals = totals.Add(day.TotalMacros)
		water += day.Water

		// Ranked on the rounded accuracy; a tie keeps the earlier date.
		score := DayScore{Date: key, Accuracy: CalculateDayAccuracy(history, key, goals)}
		if i == 0 || score.Accuracy > stats.BestDay.Accuracy {
			stats.BestDay = score
		}
		if i == 0 || score.Accuracy < stats.WorstDay.Accuracy {
			stats.WorstDay = score
		}
		if AreGoalsMet(CalculateGoalsProgress(day.TotalMacros, day.Water, goals)) {
			stats.GoalsMetCount++
		}
	}

	n := float64(len(keys))
	stats.AverageCalories = roundInt(totals.Calories / n)
	stats.AverageProtein = roundInt(totals.Protein / n)
	stats.AverageCarbs = roundInt(totals.Carbs / n)
	stats.AverageFat = roundInt(totals.Fat / n)
	stats.AverageWater = roundTo(water/n, 1)
	stats.TotalDaysTracked = len(keys)
	return stats
}
