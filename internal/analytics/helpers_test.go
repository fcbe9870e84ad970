package analytics_test

import (
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

func testGoals() model.DailyGoals {
	return model.DefaultGoals()
}

func mkDay(date string, water float64, meals ...model.Macros) model.DailyNutrition {
	d := model.DailyNutrition{Date: date, Water: water}
	for i, m := range meals {
		d.Meals = append(d.Meals, model.Meal{
			ID:       date + "-" + string(rune('a'+i)),
			Name:     "meal",
			Category: model.CategoryLunch,
			Macros:   m,
			Date:     date,
		})
	}
	d.Recalculate()
	return d
}

// onGoal is a day that lands exactly on the default goals.
func onGoal(date string) model.DailyNutrition {
	return mkDay(date, 2.0, model.Macros{Calories: 2000, Protein: 150, Carbs: 200, Fat: 65})
}

// lowDay has meals but misses every goal by half.
func lowDay(date string) model.DailyNutrition {
	return mkDay(date, 1.0, model.Macros{Calories: 1000, Protein: 75, Carbs: 100, Fat: 32.5})
}

func historyOf(days ...model.DailyNutrition) model.NutritionHistory {
	h := model.NutritionHistory{}
	for _, d := range days {
		h[d.Date] = d
	}
	return h
}

func dayAt(value string) time.Time {
	t, err := time.Parse(model.DayLayout, value)
	if err != nil {
		panic(err)
	}
	return t.Add(15 * time.Hour)
}
