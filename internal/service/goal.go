package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

type SetGoalsInput struct {
	Goals         model.DailyGoals
	EffectiveDate string
}

func SetGoals(db *sql.DB, in SetGoalsInput) error {
	if err := ValidateGoals(in.Goals); err != nil {
		return err
	}
	day, err := resolveDay(in.EffectiveDate, time.Time{})
	if err != nil {
		return err
	}
	return upsertGoals(db, in.Goals, day)
}

func upsertGoals(x execer, g model.DailyGoals, effectiveDate string) error {
	_, err := x.Exec(`
INSERT INTO goals(calories, protein_g, carbs_g, fat_g, water_l, effective_date)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(effective_date) DO UPDATE SET
  calories=excluded.calories,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fat_g=excluded.fat_g,
  water_l=excluded.water_l
`, g.Calories, g.Protein, g.Carbs, g.Fat, g.Water, effectiveDate)
	if err != nil {
		return fmt.Errorf("set goals: %w", err)
	}
	return nil
}

// CurrentGoals returns the goals in effect on date, or the defaults when no
// goal has been set yet. An empty date means today.
func CurrentGoals(db *sql.DB, date string) (model.DailyGoals, error) {
	v, err := goalVersionAt(db, date)
	if err != nil {
		return model.DailyGoals{}, err
	}
	if v == nil {
		return model.DefaultGoals(), nil
	}
	return v.DailyGoals, nil
}

func goalVersionAt(db *sql.DB, date string) (*model.GoalVersion, error) {
	day, err := resolveDay(date, time.Time{})
	if err != nil {
		return nil, err
	}
	v, err := scanGoalVersion(db.QueryRow(`
SELECT id, calories, protein_g, carbs_g, fat_g, water_l, effective_date, created_at
FROM goals
WHERE effective_date <= ?
ORDER BY effective_date DESC
LIMIT 1
`, day))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("current goals for %s: %w", day, err)
	}
	return &v, nil
}

func GoalHistory(db *sql.DB) ([]model.GoalVersion, error) {
	rows, err := db.Query(`
SELECT id, calories, protein_g, carbs_g, fat_g, water_l, effective_date, created_at
FROM goals
ORDER BY effective_date DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list goal history: %w", err)
	}
	defer rows.Close()

	goals := make([]model.GoalVersion, 0)
	for rows.Next() {
		v, err := scanGoalVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal history: %w", err)
		}
		goals = append(goals, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goal history: %w", err)
	}
	return goals, nil
}

func scanGoalVersion(s rowScanner) (model.GoalVersion, error) {
	var v model.GoalVersion
	err := s.Scan(&v.ID, &v.Calories, &v.Protein, &v.Carbs, &v.Fat, &v.Water, &v.EffectiveDate, &v.CreatedAt)
	return v, err
}

// SuggestGoals derives daily goals from a body profile. The water goal is
// the default. A profile whose suggestion falls outside the saveable goal
// ranges is rejected with ErrOutOfRange.
func SuggestGoals(p model.UserProfile) (model.DailyGoals, error) {
	if err := ValidateProfile(p); err != nil {
		return model.DailyGoals{}, err
	}
	if _, ok := analytics.ParseActivityLevel(strings.TrimSpace(string(p.ActivityLevel))); !ok {
		return model.DailyGoals{}, shapeError("activityLevel", "invalid activity level %q (use sedentary|light|moderate|active|very_active)", p.ActivityLevel)
	}
	if _, ok := analytics.ParseWeightGoal(strings.TrimSpace(string(p.Goal))); !ok {
		return model.DailyGoals{}, shapeError("goal", "invalid goal %q (use lose_weight|maintain|gain_weight|gain_muscle)", p.Goal)
	}
	kcal, ok := analytics.CalculateCalorieGoal(p)
	if !ok {
		return model.DailyGoals{}, shapeError("profile", "incomplete profile")
	}
	goals := analytics.CalculateMacroGoals(kcal)
	if err := ValidateGoals(goals); err != nil {
		return model.DailyGoals{}, fmt.Errorf("profile gives goals that cannot be saved: %w", err)
	}
	return goals, nil
}
