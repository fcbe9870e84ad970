package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

// Validation failures wrap one of these kinds.
var (
	ErrInvalidShape = errors.New("invalid shape")
	ErrOutOfRange   = errors.New("out of range")
)

type ValidationError struct {
	Field string
	Kind  error
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func shapeError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Kind: ErrInvalidShape, Msg: fmt.Sprintf(format, args...)}
}

type bounds struct {
	min, max float64
}

func (b bounds) check(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return shapeError(field, "must be a finite number")
	}
	if v < b.min || v > b.max {
		return &ValidationError{
			Field: field,
			Kind:  ErrOutOfRange,
			Msg:   fmt.Sprintf("%g is outside %g-%g", v, b.min, b.max),
		}
	}
	return nil
}

var (
	mealCaloriesRange = bounds{0, 10000}
	mealMacroRange    = bounds{0, 1000}
	waterRange        = bounds{0, 10}

	goalCaloriesRange = bounds{500, 10000}
	goalProteinRange  = bounds{20, 500}
	goalCarbsRange    = bounds{20, 800}
	goalFatRange      = bounds{20, 300}
	goalWaterRange    = bounds{0.5, 10}

	profileWeightRange = bounds{20, 300}
	profileHeightRange = bounds{50, 250}
	profileAgeRange    = bounds{10, 120}
)

const maxNameLen = 100

func validateName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shapeError(field, "is required")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", &ValidationError{Field: field, Kind: ErrOutOfRange, Msg: fmt.Sprintf("must be at most %d characters", maxNameLen)}
	}
	return name, nil
}

func validateCategory(value string) (model.MealCategory, error) {
	c, err := model.ParseMealCategory(value)
	if err != nil {
		return "", shapeError("category", "%s", err.Error())
	}
	return c, nil
}

func validateDay(field, value string) error {
	if _, err := time.Parse(model.DayLayout, value); err != nil {
		return shapeError(field, "invalid date %q (expected YYYY-MM-DD)", value)
	}
	return nil
}

// ValidateMacros checks a meal's nutrition values.
func ValidateMacros(m model.Macros) error {
	if err := mealCaloriesRange.check("calories", m.Calories); err != nil {
		return err
	}
	if err := mealMacroRange.check("protein", m.Protein); err != nil {
		return err
	}
	if err := mealMacroRange.check("carbs", m.Carbs); err != nil {
		return err
	}
	return mealMacroRange.check("fat", m.Fat)
}

func ValidateWater(liters float64) error {
	return waterRange.check("water", liters)
}

func ValidateGoals(g model.DailyGoals) error {
	checks := []struct {
		field string
		b     bounds
		v     float64
	}{
		{"calories", goalCaloriesRange, g.Calories},
		{"protein", goalProteinRange, g.Protein},
		{"carbs", goalCarbsRange, g.Carbs},
		{"fat", goalFatRange, g.Fat},
		{"water", goalWaterRange, g.Water},
	}
	for _, c := range checks {
		if err := c.b.check("goals."+c.field, c.v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMeal checks a fully formed meal, as found in imported files.
func ValidateMeal(m model.Meal) error {
	if strings.TrimSpace(m.ID) == "" {
		return shapeError("meal.id", "is required")
	}
	if _, err := validateName("meal.name", m.Name); err != nil {
		return err
	}
	if _, err := validateCategory(string(m.Category)); err != nil {
		return err
	}
	if err := validateDay("meal.date", m.Date); err != nil {
		return err
	}
	if m.Timestamp.IsZero() {
		return shapeError("meal.timestamp", "is required")
	}
	return ValidateMacros(m.Macros)
}

func ValidateProfile(p model.UserProfile) error {
	if err := profileWeightRange.check("weight", p.WeightKg); err != nil {
		return err
	}
	if err := profileHeightRange.check("height", p.HeightCm); err != nil {
		return err
	}
	if err := profileAgeRange.check("age", float64(p.Age)); err != nil {
		return err
	}
	switch p.Gender {
	case model.GenderMale, model.GenderFemale, model.GenderOther:
	default:
		return shapeError("gender", "invalid gender %q (use male|female|other)", p.Gender)
	}
	return nil
}
