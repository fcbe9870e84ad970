package service

import (
	"database/sql"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
	"github.com/WagnerRodrigues181/nutri-lens/internal/i18n"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

type Remaining struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Water    float64 `json:"water"`
}

type DayStatus struct {
	Date         string                      `json:"date"`
	Meals        []model.Meal                `json:"meals"`
	Water        float64                     `json:"water"`
	TotalMacros  model.Macros                `json:"totalMacros"`
	Goals        model.DailyGoals            `json:"goals"`
	Progress     model.GoalsProgress         `json:"progress"`
	Remaining    Remaining                   `json:"remaining"`
	Distribution analytics.MacroDistribution `json:"distribution"`
	Accuracy     int                         `json:"accuracy"`
	GoalsMet     bool                        `json:"goalsMet"`
	Streak       analytics.StreakStats       `json:"streak"`
	Insights     []analytics.Insight         `json:"insights"`
}

type ReportInput struct {
	// Date defaults to the calendar day of Now.
	Date   string
	Now    time.Time
	Locale i18n.Locale
}

// DayReport builds the full picture of one day: progress against the goals in
// effect that day, the streak over the whole history, and localized insights.
func DayReport(db *sql.DB, in ReportInput) (*DayStatus, error) {
	now := nowOr(in.Now)
	date, err := resolveDay(in.Date, now)
	if err != nil {
		return nil, err
	}
	history, err := LoadHistory(db, "", "")
	if err != nil {
		return nil, err
	}
	goals, err := CurrentGoals(db, date)
	if err != nil {
		return nil, err
	}

	day, ok := history[date]
	if !ok {
		day = model.DailyNutrition{Date: date, Meals: []model.Meal{}}
	}
	progress := analytics.CalculateGoalsProgress(day.TotalMacros, day.Water, goals)
	streak := analytics.GetStreakStats(history, goals, now)
	insights := analytics.GenerateInsights(analytics.InsightInput{
		TotalMacros:   day.TotalMacros,
		Water:         day.Water,
		Goals:         goals,
		MealsCount:    len(day.Meals),
		CurrentStreak: streak.Current,
		Now:           now,
	})

	return &DayStatus{
		Date:        date,
		Meals:       day.Meals,
		Water:       day.Water,
		TotalMacros: day.TotalMacros,
		Goals:       goals,
		Progress:    progress,
		Remaining: Remaining{
			Calories: analytics.CalculateRemaining(day.TotalMacros.Calories, goals.Calories),
			Protein:  analytics.CalculateRemaining(day.TotalMacros.Protein, goals.Protein),
			Carbs:    analytics.CalculateRemaining(day.TotalMacros.Carbs, goals.Carbs),
			Fat:      analytics.CalculateRemaining(day.TotalMacros.Fat, goals.Fat),
			Water:    analytics.CalculateRemaining(day.Water, goals.Water),
		},
		Distribution: analytics.CalculateMacroDistribution(day.TotalMacros),
		Accuracy:     analytics.Accuracy(progress),
		GoalsMet:     analytics.AreGoalsMet(progress),
		Streak:       streak,
		Insights:     i18n.LocalizeInsights(localeOr(in.Locale), insights),
	}, nil
}

type StatisticsStatus struct {
	analytics.Statistics
	Days   int                   `json:"days"`
	From   string                `json:"from,omitempty"`
	To     string                `json:"to"`
	Goals  model.DailyGoals      `json:"goals"`
	Streak analytics.StreakStats `json:"streak"`
}

// StatisticsReport aggregates the last days calendar days ending at now. A
// non-positive days covers the whole history.
func StatisticsReport(db *sql.DB, days int, now time.Time) (*StatisticsStatus, error) {
	now = nowOr(now)
	today := now.Format(model.DayLayout)
	history, err := LoadHistory(db, "", "")
	if err != nil {
		return nil, err
	}
	goals, err := CurrentGoals(db, today)
	if err != nil {
		return nil, err
	}
	out := &StatisticsStatus{
		Statistics: analytics.CalculateStatisticsWindow(history, goals, now, days),
		Days:       max(days, 0),
		To:         today,
		Goals:      goals,
		Streak:     analytics.GetStreakStats(history, goals, now),
	}
	if days > 0 {
		out.From = analytics.LastNDays(now, days)[0]
	}
	return out, nil
}

func StreakReport(db *sql.DB, now time.Time) (analytics.StreakStats, error) {
	now = nowOr(now)
	history, err := LoadHistory(db, "", "")
	if err != nil {
		return analytics.StreakStats{}, err
	}
	goals, err := CurrentGoals(db, now.Format(model.DayLayout))
	if err != nil {
		return analytics.StreakStats{}, err
	}
	return analytics.GetStreakStats(history, goals, now), nil
}

func localeOr(l i18n.Locale) i18n.Locale {
	if l == "" {
		return i18n.DefaultLocale
	}
	return l
}
