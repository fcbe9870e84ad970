package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

type MealInput struct {
	Name     string
	Category string
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	// Date defaults to the calendar day of LoggedAt.
	Date     string
	LoggedAt time.Time
}

// MealUpdate changes only the fields that are set.
type MealUpdate struct {
	Name     *string
	Category *string
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
	Date     *string
}

type MealFilter struct {
	Date     string
	FromDate string
	ToDate   string
	Category string
	Limit    int
}

func buildMeal(in MealInput) (model.Meal, error) {
	name, err := validateName("name", in.Name)
	if err != nil {
		return model.Meal{}, err
	}
	category, err := validateCategory(in.Category)
	if err != nil {
		return model.Meal{}, err
	}
	macros := model.Macros{Calories: in.Calories, Protein: in.Protein, Carbs: in.Carbs, Fat: in.Fat}
	if err := ValidateMacros(macros); err != nil {
		return model.Meal{}, err
	}
	loggedAt := nowOr(in.LoggedAt)
	day, err := resolveDay(in.Date, loggedAt)
	if err != nil {
		return model.Meal{}, err
	}
	return model.Meal{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		Macros:    macros,
		Timestamp: loggedAt,
		Date:      day,
	}, nil
}

func AddMeal(db *sql.DB, in MealInput) (model.Meal, error) {
	m, err := buildMeal(in)
	if err != nil {
		return model.Meal{}, err
	}
	if err := insertMeal(db, m); err != nil {
		return model.Meal{}, err
	}
	return m, nil
}

func GetMeal(db *sql.DB, id string) (model.Meal, error) {
	id = strings.TrimSpace(id)
	m, err := scanMeal(db.QueryRow(`SELECT `+mealColumns+` FROM meals WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return model.Meal{}, fmt.Errorf("meal %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Meal{}, fmt.Errorf("get meal %s: %w", id, err)
	}
	return m, nil
}

func UpdateMeal(db *sql.DB, id string, up MealUpdate) (model.Meal, error) {
	m, err := GetMeal(db, id)
	if err != nil {
		return model.Meal{}, err
	}
	if up.Name != nil {
		if m.Name, err = validateName("name", *up.Name); err != nil {
			return model.Meal{}, err
		}
	}
	if up.Category != nil {
		if m.Category, err = validateCategory(*up.Category); err != nil {
			return model.Meal{}, err
		}
	}
	if up.Calories != nil {
		m.Calories = *up.Calories
	}
	if up.Protein != nil {
		m.Protein = *up.Protein
	}
	if up.Carbs != nil {
		m.Carbs = *up.Carbs
	}
	if up.Fat != nil {
		m.Fat = *up.Fat
	}
	if err := ValidateMacros(m.Macros); err != nil {
		return model.Meal{}, err
	}
	if up.Date != nil {
		day := strings.TrimSpace(*up.Date)
		if err := validateDay("date", day); err != nil {
			return model.Meal{}, err
		}
		m.Date = day
	}

	_, err = db.Exec(`
UPDATE meals
SET day = ?, name = ?, category = ?, calories = ?, protein_g = ?, carbs_g = ?, fat_g = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, m.Date, m.Name, string(m.Category), m.Calories, m.Protein, m.Carbs, m.Fat, m.ID)
	if err != nil {
		return model.Meal{}, fmt.Errorf("update meal %s: %w", m.ID, err)
	}
	return m, nil
}

func DeleteMeal(db *sql.DB, id string) error {
	id = strings.TrimSpace(id)
	res, err := db.Exec(`DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete meal rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("meal %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListMeals returns the most recent meals first.
func ListMeals(db *sql.DB, f MealFilter) ([]model.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE 1=1`
	args := make([]any, 0)

	if d := strings.TrimSpace(f.Date); d != "" {
		if err := validateDay("date", d); err != nil {
			return nil, err
		}
		query += ` AND day = ?`
		args = append(args, d)
	}
	if d := strings.TrimSpace(f.FromDate); d != "" {
		if err := validateDay("from", d); err != nil {
			return nil, err
		}
		query += ` AND day >= ?`
		args = append(args, d)
	}
	if d := strings.TrimSpace(f.ToDate); d != "" {
		if err := validateDay("to", d); err != nil {
			return nil, err
		}
		query += ` AND day <= ?`
		args = append(args, d)
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		category, err := validateCategory(c)
		if err != nil {
			return nil, err
		}
		query += ` AND category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY day DESC, seq DESC`

	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	meals := make([]model.Meal, 0)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	return meals, nil
}

// ResolveMealID expands a unique id prefix, as printed by meal listings, to
// the full id.
func ResolveMealID(db *sql.DB, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", shapeError("id", "is required")
	}
	rows, err := db.Query(`SELECT id FROM meals WHERE substr(id, 1, ?) = ? LIMIT 2`, len(ref), ref)
	if err != nil {
		return "", fmt.Errorf("resolve meal %s: %w", ref, err)
	}
	defer rows.Close()
	ids := make([]string, 0, 2)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan meal id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate meal ids: %w", err)
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("meal %s: %w", ref, ErrNotFound)
	case 1:
		return ids[0], nil
	}
	return "", shapeError("id", "prefix %q matches more than one meal", ref)
}
