// Package analytics turns logged meals, water, and goals into derived
// signals: goal progress, day accuracy, streaks, statistics, insights, and
// achievements. Every function is pure and takes its inputs explicitly.
package analytics

import (
	"math"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

const (
	onTargetLow  = 95
	onTargetHigh = 105

	proteinKcalPerGram = 4
	carbsKcalPerGram   = 4
	fatKcalPerGram     = 9
)

type MacroDistribution struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// CalculateProgress returns current as a whole percentage of goal. A goal of
// zero or less yields 0. Values above 100 are kept.
func CalculateProgress(current, goal float64) int {
	if goal <= 0 {
		return 0
	}
	return roundInt(current / goal * 100)
}

func CalculateGoalsProgress(current model.Macros, water float64, goals model.DailyGoals) model.GoalsProgress {
	return model.GoalsProgress{
		Calories: CalculateProgress(current.Calories, goals.Calories),
		Protein:  CalculateProgress(current.Protein, goals.Protein),
		Carbs:    CalculateProgress(current.Carbs, goals.Carbs),
		Fat:      CalculateProgress(current.Fat, goals.Fat),
		Water:    CalculateProgress(water, goals.Water),
	}
}

func CalculateRemaining(current, goal float64) float64 {
	return math.Max(0, goal-current)
}

// AreGoalsMet reports whether every metric sits in the 95-105% band.
func AreGoalsMet(p model.GoalsProgress) bool {
	for _, v := range p.Values() {
		if !onTarget(v) {
			return false
		}
	}
	return true
}

// CalculateMacroDistribution returns each macro's share of the calories it
// contributes. Shares are rounded independently and may not sum to 100.
func CalculateMacroDistribution(m model.Macros) MacroDistribution {
	protein, carbs, fat, total := macroKcal(m)
	if total == 0 {
		return MacroDistribution{}
	}
	return MacroDistribution{
		Protein: roundInt(protein / total * 100),
		Carbs:   roundInt(carbs / total * 100),
		Fat:     roundInt(fat / total * 100),
	}
}

func macroKcal(m model.Macros) (protein, carbs, fat, total float64) {
	protein = m.Protein * proteinKcalPerGram
	carbs = m.Carbs * carbsKcalPerGram
	fat = m.Fat * fatKcalPerGram
	return protein, carbs, fat, protein + carbs + fat
}

func onTarget(v int) bool {
	return v >= onTargetLow && v <= onTargetHigh
}

// roundInt rounds half up, so 0.5 becomes 1 and -0.5 becomes 0.
func roundInt(v float64) int {
	return int(math.Floor(v + 0.5))
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Floor(v*p+0.5) / p
}
