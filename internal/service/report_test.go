package service_test

import (
	"testing"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
	"github.com/WagnerRodrigues181/nutri-lens/internal/i18n"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

func TestDayReportOnGoalDay(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	logOnGoalDay(t, db, "2026-03-01")
	logOnGoalDay(t, db, "2026-03-02")

	report, err := service.DayReport(db, service.ReportInput{
		Date:   "2026-03-02",
		Now:    at(t, "2026-03-02 20:00"),
		Locale: i18n.EnUS,
	})
	if err != nil {
		t.Fatalf("day report: %v", err)
	}
	if len(report.Meals) != 3 || report.TotalMacros.Calories != 2000 || report.Water != 2 {
		t.Fatalf("unexpected day totals: %+v", report)
	}
	for _, p := range report.Progress.Values() {
		if p != 100 {
			t.Fatalf("expected 100%% progress everywhere, got %+v", report.Progress)
		}
	}
	if !report.GoalsMet || report.Accuracy != 100 {
		t.Fatalf("expected goals met with full accuracy, got met=%v accuracy=%d", report.GoalsMet, report.Accuracy)
	}
	if report.Remaining != (service.Remaining{}) {
		t.Fatalf("expected nothing remaining, got %+v", report.Remaining)
	}
	if report.Streak.Current != 2 || report.Streak.Longest != 2 || !report.Streak.TodayComplete {
		t.Fatalf("unexpected streak: %+v", report.Streak)
	}

	rules := make([]string, 0, len(report.Insights))
	for _, in := range report.Insights {
		if in.Message == "" {
			t.Fatalf("insight %s has no message", in.Rule)
		}
		rules = append(rules, in.Rule)
	}
	want := []string{
		analytics.RulePerfectDay,
		analytics.RuleGoalReached,
		analytics.RuleGoalReached,
		analytics.RuleWaterReached,
		analytics.RuleBalancedMacros,
	}
	if len(rules) != len(want) {
		t.Fatalf("expected rules %v, got %v", want, rules)
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Fatalf("expected rules %v, got %v", want, rules)
		}
	}
}

func TestDayReportEmptyDay(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	report, err := service.DayReport(db, service.ReportInput{Now: at(t, "2026-03-05 09:00")})
	if err != nil {
		t.Fatalf("day report: %v", err)
	}
	if report.Date != "2026-03-05" || report.Meals == nil || len(report.Meals) != 0 {
		t.Fatalf("expected an empty day, got %+v", report)
	}
	if len(report.Insights) != 1 || report.Insights[0].Rule != analytics.RuleNoMeals {
		t.Fatalf("expected only the no-meals insight, got %+v", report.Insights)
	}
	if report.Remaining.Calories != 2000 || report.Accuracy != 0 {
		t.Fatalf("unexpected empty-day numbers: %+v", report)
	}
}

func TestDayReportUsesGoalsInEffectThatDay(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	logOnGoalDay(t, db, "2026-03-01")
	if err := service.SetGoals(db, service.SetGoalsInput{Goals: doubledGoals(), EffectiveDate: "2026-03-02"}); err != nil {
		t.Fatalf("set goals: %v", err)
	}

	report, err := service.DayReport(db, service.ReportInput{Date: "2026-03-01", Now: at(t, "2026-03-03 10:00")})
	if err != nil {
		t.Fatalf("day report: %v", err)
	}
	if report.Progress.Calories != 100 {
		t.Fatalf("expected progress against the old goals, got %+v", report.Progress)
	}
}

func TestStatisticsReportWindow(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	logOnGoalDay(t, db, "2026-02-01")
	logOnGoalDay(t, db, "2026-03-01")
	mustAddMeal(t, db, service.MealInput{Name: "Toast", Category: "breakfast", Calories: 1000, Protein: 75, Carbs: 100, Fat: 32.5, Date: "2026-03-02", LoggedAt: at(t, "2026-03-02 08:00")})

	stats, err := service.StatisticsReport(db, 7, at(t, "2026-03-02 21:00"))
	if err != nil {
		t.Fatalf("statistics report: %v", err)
	}
	if stats.TotalDaysTracked != 2 || stats.GoalsMetCount != 1 {
		t.Fatalf("expected two tracked days with one met, got %+v", stats.Statistics)
	}
	if stats.AverageCalories != 1500 || stats.AverageWater != 1 {
		t.Fatalf("unexpected averages: %+v", stats.Statistics)
	}
	if stats.BestDay.Date != "2026-03-01" || stats.WorstDay.Date != "2026-03-02" {
		t.Fatalf("unexpected best/worst: %+v / %+v", stats.BestDay, stats.WorstDay)
	}
	if stats.From != "2026-02-24" || stats.To != "2026-03-02" {
		t.Fatalf("unexpected window %s..%s", stats.From, stats.To)
	}

	all, err := service.StatisticsReport(db, 0, at(t, "2026-03-02 21:00"))
	if err != nil {
		t.Fatalf("statistics report: %v", err)
	}
	if all.TotalDaysTracked != 3 || all.From != "" {
		t.Fatalf("expected unrestricted window, got %+v", all)
	}
}

func TestStreakReport(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	logOnGoalDay(t, db, "2026-03-01")
	logOnGoalDay(t, db, "2026-03-02")
	logOnGoalDay(t, db, "2026-03-04")

	streak, err := service.StreakReport(db, at(t, "2026-03-04 22:00"))
	if err != nil {
		t.Fatalf("streak report: %v", err)
	}
	if streak.Current != 1 || streak.Longest != 2 || !streak.TodayComplete {
		t.Fatalf("unexpected streak: %+v", streak)
	}
}

func doubledGoals() model.DailyGoals {
	return model.DailyGoals{Calories: 4000, Protein: 300, Carbs: 400, Fat: 130, Water: 4}
}
