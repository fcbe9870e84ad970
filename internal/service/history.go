package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

// LoadHistory assembles stored meals and water into a history for the
// inclusive range [from, to]. Empty bounds are open. Totals are recomputed
// from the meals of each day.
func LoadHistory(db *sql.DB, from, to string) (model.NutritionHistory, error) {
	where, args, err := dayRange(from, to)
	if err != nil {
		return nil, err
	}
	history := model.NutritionHistory{}

	rows, err := db.Query(`SELECT `+mealColumns+` FROM meals`+where+` ORDER BY day ASC, seq ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("load meals: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		day := history[m.Date]
		day.Date = m.Date
		day.Meals = append(day.Meals, m)
		history[m.Date] = day
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}

	waterRows, err := db.Query(`SELECT day, liters FROM water_logs`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("load water: %w", err)
	}
	defer waterRows.Close()
	for waterRows.Next() {
		var key string
		var liters float64
		if err := waterRows.Scan(&key, &liters); err != nil {
			return nil, fmt.Errorf("scan water: %w", err)
		}
		day := history[key]
		day.Date = key
		day.Water = liters
		history[key] = day
	}
	if err := waterRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate water: %w", err)
	}

	for key, day := range history {
		if day.Meals == nil {
			day.Meals = []model.Meal{}
		}
		day.Recalculate()
		history[key] = day
	}
	return history, nil
}

// LoadDay returns one day; a day with nothing logged comes back empty.
func LoadDay(db *sql.DB, date string) (model.DailyNutrition, error) {
	date = strings.TrimSpace(date)
	if err := validateDay("date", date); err != nil {
		return model.DailyNutrition{}, err
	}
	history, err := LoadHistory(db, date, date)
	if err != nil {
		return model.DailyNutrition{}, err
	}
	day, ok := history[date]
	if !ok {
		return model.DailyNutrition{Date: date, Meals: []model.Meal{}}, nil
	}
	return day, nil
}

func dayRange(from, to string) (string, []any, error) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if from = strings.TrimSpace(from); from != "" {
		if err := validateDay("from", from); err != nil {
			return "", nil, err
		}
		clauses = append(clauses, "day >= ?")
		args = append(args, from)
	}
	if to = strings.TrimSpace(to); to != "" {
		if err := validateDay("to", to); err != nil {
			return "", nil, err
		}
		clauses = append(clauses, "day <= ?")
		args = append(args, to)
	}
	if from != "" && to != "" && from > to {
		return "", nil, shapeError("range", "from %s is after to %s", from, to)
	}
	if len(clauses) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}
