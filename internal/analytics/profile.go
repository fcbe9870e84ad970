package analytics

import "github.com/WagnerRodrigues181/nutri-lens/internal/model"

var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:  1.2,
	model.ActivityLight:      1.375,
	model.ActivityModerate:   1.55,
	model.ActivityActive:     1.725,
	model.ActivityVeryActive: 1.9,
}

var goalAdjustments = map[model.WeightGoal]float64{
	model.GoalLoseWeight: -500,
	model.GoalMaintain:   0,
	model.GoalGainWeight: 300,
	model.GoalGainMuscle: 400,
}

// CalculateBMR uses the Mifflin-St Jeor equation. It reports false when the
// profile lacks weight, height, age, or gender.
func CalculateBMR(p model.UserProfile) (float64, bool) {
	if p.WeightKg <= 0 || p.HeightCm <= 0 || p.Age <= 0 || p.Gender == "" {
		return 0, false
	}
	s := -78.0
	switch p.Gender {
	case model.GenderMale:
		s = 5
	case model.GenderFemale:
		s = -161
	}
	return 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age) + s, true
}

func CalculateTDEE(p model.UserProfile) (int, bool) {
	bmr, ok := CalculateBMR(p)
	if !ok || bmr <= 0 {
		return 0, false
	}
	m, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		return 0, false
	}
	return roundInt(bmr * m), true
}

func CalculateCalorieGoal(p model.UserProfile) (int, bool) {
	tdee, ok := CalculateTDEE(p)
	if !ok {
		return 0, false
	}
	adj, ok := goalAdjustments[p.Goal]
	if !ok {
		return 0, false
	}
	return roundInt(float64(tdee) + adj), true
}

// CalculateMacroGoals splits calories 30/40/30 across protein, carbs, and fat.
// Water is left at the default goal.
func CalculateMacroGoals(calories int) model.DailyGoals {
	kcal := float64(calories)
	return model.DailyGoals{
		Calories: kcal,
		Protein:  float64(roundInt(kcal * 0.3 / proteinKcalPerGram)),
		Carbs:    float64(roundInt(kcal * 0.4 / carbsKcalPerGram)),
		Fat:      float64(roundInt(kcal * 0.3 / fatKcalPerGram)),
		Water:    model.DefaultGoals().Water,
	}
}

func ParseActivityLevel(value string) (model.ActivityLevel, bool) {
	l := model.ActivityLevel(value)
	_, ok := activityMultipliers[l]
	return l, ok
}

func ParseWeightGoal(value string) (model.WeightGoal, bool) {
	g := model.WeightGoal(value)
	_, ok := goalAdjustments[g]
	return g, ok
}
