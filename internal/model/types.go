package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

type MealCategory string

const (
	CategoryBreakfast MealCategory = "breakfast"
	CategoryLunch     MealCategory = "lunch"
	CategoryDinner    MealCategory = "dinner"
	CategorySnack     MealCategory = "snack"
)

var MealCategories = []MealCategory{CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack}

func ParseMealCategory(value string) (MealCategory, error) {
	v := MealCategory(strings.ToLower(strings.TrimSpace(value)))
	for _, c := range MealCategories {
		if v == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid meal category %q (use breakfast|lunch|dinner|snack)", value)
}

type Meal struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category MealCategory `json:"category"`
	Macros
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"`
}

type MealTemplate struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category MealCategory `json:"category"`
	Macros
	IsFavorite bool `json:"isFavorite"`
}

// DailyNutrition is one calendar day of logged data. TotalMacros must equal
// the sum of Meals; call Recalculate after mutating Meals.
type DailyNutrition struct {
	Date        string  `json:"date"`
	Meals       []Meal  `json:"meals"`
	Water       float64 `json:"water"`
	TotalMacros Macros  `json:"totalMacros"`
}

func (d *DailyNutrition) Recalculate() {
	d.TotalMacros = SumMacros(d.Meals)
}

func (d DailyNutrition) HasMeals() bool {
	return len(d.Meals) > 0
}

func SumMacros(meals []Meal) Macros {
	var total Macros
	for _, m := range meals {
		total = total.Add(m.Macros)
	}
	return total
}

// NutritionHistory maps a YYYY-MM-DD key to that day's data. Map order is
// meaningless; use SortedDates wherever chronology matters.
type NutritionHistory map[string]DailyNutrition

// SortedDates returns the keys in ascending calendar order. Keys that are not
// valid dates are dropped.
func (h NutritionHistory) SortedDates() []string {
	type keyed struct {
		key string
		at  time.Time
	}
	items := make([]keyed, 0, len(h))
	for k := range h {
		t, err := time.Parse(DayLayout, k)
		if err != nil {
			continue
		}
		items = append(items, keyed{key: k, at: t})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.Before(items[j].at)
	})
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.key)
	}
	return out
}

func (h NutritionHistory) MealCount() int {
	total := 0
	for _, d := range h {
		total += len(d.Meals)
	}
	return total
}

type DailyGoals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Water    float64 `json:"water"`
}

func DefaultGoals() DailyGoals {
	return DailyGoals{
		Calories: 2000,
		Protein:  150,
		Carbs:    200,
		Fat:      65,
		Water:    2.0,
	}
}

type GoalsProgress struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Water    int `json:"water"`
}

func (p GoalsProgress) Values() []int {
	return []int{p.Calories, p.Protein, p.Carbs, p.Fat, p.Water}
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

type WeightGoal string

const (
	GoalLoseWeight WeightGoal = "lose_weight"
	GoalMaintain   WeightGoal = "maintain"
	GoalGainWeight WeightGoal = "gain_weight"
	GoalGainMuscle WeightGoal = "gain_muscle"
)

type UserProfile struct {
	WeightKg      float64       `json:"weight,omitempty"`
	HeightCm      float64       `json:"height,omitempty"`
	Age           int           `json:"age,omitempty"`
	Gender        Gender        `json:"gender,omitempty"`
	ActivityLevel ActivityLevel `json:"activityLevel,omitempty"`
	Goal          WeightGoal    `json:"goal,omitempty"`
}

// GoalVersion is a goal set that applies from EffectiveDate onward.
type GoalVersion struct {
	ID int64 `json:"id"`
	DailyGoals
	EffectiveDate string    `json:"effectiveDate"`
	CreatedAt     time.Time `json:"createdAt"`
}
