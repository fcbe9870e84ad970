package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

type TemplateInput struct {
	Name       string
	Category   string
	Calories   float64
	Protein    float64
	Carbs      float64
	Fat        float64
	IsFavorite bool
}

const templateColumns = `id, name, category, calories, protein_g, carbs_g, fat_g, is_favorite`

func CreateTemplate(db *sql.DB, in TemplateInput) (model.MealTemplate, error) {
	name, err := validateName("name", in.Name)
	if err != nil {
		return model.MealTemplate{}, err
	}
	category, err := validateCategory(in.Category)
	if err != nil {
		return model.MealTemplate{}, err
	}
	macros := model.Macros{Calories: in.Calories, Protein: in.Protein, Carbs: in.Carbs, Fat: in.Fat}
	if err := ValidateMacros(macros); err != nil {
		return model.MealTemplate{}, err
	}
	t := model.MealTemplate{
		ID:         uuid.NewString(),
		Name:       name,
		Category:   category,
		Macros:     macros,
		IsFavorite: in.IsFavorite,
	}
	if err := insertTemplate(db, t); err != nil {
		return model.MealTemplate{}, err
	}
	return t, nil
}

func insertTemplate(x execer, t model.MealTemplate) error {
	_, err := x.Exec(`
INSERT INTO meal_templates(`+templateColumns+`)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  category=excluded.category,
  calories=excluded.calories,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fat_g=excluded.fat_g,
  is_favorite=excluded.is_favorite
`, t.ID, t.Name, string(t.Category), t.Calories, t.Protein, t.Carbs, t.Fat, boolToInt(t.IsFavorite))
	if err != nil {
		return fmt.Errorf("insert template %q: %w", t.Name, err)
	}
	return nil
}

// ListTemplates returns favorites first, then by name.
func ListTemplates(db *sql.DB, favoritesOnly bool) ([]model.MealTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM meal_templates`
	if favoritesOnly {
		query += ` WHERE is_favorite = 1`
	}
	query += ` ORDER BY is_favorite DESC, name COLLATE NOCASE ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	out := make([]model.MealTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return out, nil
}

// FindTemplate looks a template up by id, then by case-insensitive name.
func FindTemplate(db *sql.DB, ref string) (model.MealTemplate, error) {
	ref = strings.TrimSpace(ref)
	t, err := scanTemplate(db.QueryRow(`SELECT `+templateColumns+` FROM meal_templates WHERE id = ?`, ref))
	if err == sql.ErrNoRows {
		t, err = scanTemplate(db.QueryRow(`SELECT `+templateColumns+` FROM meal_templates WHERE lower(name) = ? ORDER BY created_at ASC LIMIT 1`, normalizeName(ref)))
	}
	if err == sql.ErrNoRows {
		return model.MealTemplate{}, fmt.Errorf("template %q: %w", ref, ErrNotFound)
	}
	if err != nil {
		return model.MealTemplate{}, fmt.Errorf("find template %q: %w", ref, err)
	}
	return t, nil
}

func SetTemplateFavorite(db *sql.DB, ref string, favorite bool) (model.MealTemplate, error) {
	t, err := FindTemplate(db, ref)
	if err != nil {
		return model.MealTemplate{}, err
	}
	if _, err := db.Exec(`UPDATE meal_templates SET is_favorite = ? WHERE id = ?`, boolToInt(favorite), t.ID); err != nil {
		return model.MealTemplate{}, fmt.Errorf("update template %s: %w", t.ID, err)
	}
	t.IsFavorite = favorite
	return t, nil
}

func DeleteTemplate(db *sql.DB, ref string) error {
	t, err := FindTemplate(db, ref)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM meal_templates WHERE id = ?`, t.ID); err != nil {
		return fmt.Errorf("delete template %s: %w", t.ID, err)
	}
	return nil
}

// AddMealFromTemplate logs a new meal copied from the template.
func AddMealFromTemplate(db *sql.DB, ref, date string, at time.Time) (model.Meal, error) {
	t, err := FindTemplate(db, ref)
	if err != nil {
		return model.Meal{}, err
	}
	return AddMeal(db, MealInput{
		Name:     t.Name,
		Category: string(t.Category),
		Calories: t.Calories,
		Protein:  t.Protein,
		Carbs:    t.Carbs,
		Fat:      t.Fat,
		Date:     date,
		LoggedAt: at,
	})
}

func scanTemplate(s rowScanner) (model.MealTemplate, error) {
	var t model.MealTemplate
	var category string
	var favorite int
	if err := s.Scan(&t.ID, &t.Name, &category, &t.Calories, &t.Protein, &t.Carbs, &t.Fat, &favorite); err != nil {
		return model.MealTemplate{}, err
	}
	t.Category = model.MealCategory(category)
	t.IsFavorite = favorite == 1
	return t, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
