package analytics_test

import (
	"testing"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

func TestStatisticsEmptyHistory(t *testing.T) {
	t.Parallel()
	got := analytics.CalculateStatistics(model.NutritionHistory{}, testGoals())
	if got != (analytics.Statistics{}) {
		t.Fatalf("expected zero statistics, got %+v", got)
	}

	onlyWater := historyOf(mkDay("2026-03-01", 2.5))
	got = analytics.CalculateStatistics(onlyWater, testGoals())
	if got.TotalDaysTracked != 0 || got.AverageWater != 0 {
		t.Fatalf("expected days without meals to be skipped, got %+v", got)
	}
}

func TestStatisticsAveragesAndExtremes(t *testing.T) {
	t.Parallel()
	h := historyOf(
		lowDay("2026-03-02"),
		onGoal("2026-03-01"),
		mkDay("2026-03-03", 3.0),
	)
	got := analytics.CalculateStatistics(h, testGoals())

	if got.TotalDaysTracked != 2 {
		t.Fatalf("expected 2 tracked days, got %d", got.TotalDaysTracked)
	}
	if got.AverageCalories != 1500 || got.AverageProtein != 113 || got.AverageCarbs != 150 || got.AverageFat != 49 {
		t.Fatalf("unexpected macro averages: %+v", got)
	}
	if got.AverageWater != 1.5 {
		t.Fatalf("expected average water 1.5, got %v", got.AverageWater)
	}
	if got.BestDay != (analytics.DayScore{Date: "2026-03-01", Accuracy: 100}) {
		t.Fatalf("unexpected best day: %+v", got.BestDay)
	}
	if got.WorstDay != (analytics.DayScore{Date: "2026-03-02", Accuracy: 50}) {
		t.Fatalf("unexpected worst day: %+v", got.WorstDay)
	}
	if got.GoalsMetCount != 1 {
		t.Fatalf("expected 1 day with goals met, got %d", got.GoalsMetCount)
	}
}

func TestStatisticsTiesKeepEarliestDate(t *testing.T) {
	t.Parallel()
	h := historyOf(onGoal("2026-03-05"), onGoal("2026-03-03"), onGoal("2026-03-04"))
	got := analytics.CalculateStatistics(h, testGoals())
	if got.BestDay.Date != "2026-03-03" || got.WorstDay.Date != "2026-03-03" {
		t.Fatalf("expected earliest date to win ties, got best=%s worst=%s", got.BestDay.Date, got.WorstDay.Date)
	}
}

func TestStatisticsWindow(t *testing.T) {
	t.Parallel()
	h := historyOf(onGoal("2026-02-20"), onGoal("2026-03-01"), lowDay("2026-03-02"))

	week := analytics.CalculateStatisticsWindow(h, testGoals(), dayAt("2026-03-02"), 7)
	if week.TotalDaysTracked != 2 {
		t.Fatalf("expected 2 days in 7-day window, got %d", week.TotalDaysTracked)
	}

	today := analytics.CalculateStatisticsWindow(h, testGoals(), dayAt("2026-03-02"), 1)
	if today.TotalDaysTracked != 1 || today.BestDay.Date != "2026-03-02" {
		t.Fatalf("expected only today in 1-day window, got %+v", today)
	}

	all := analytics.CalculateStatisticsWindow(h, testGoals(), dayAt("2026-03-02"), 0)
	if all.TotalDaysTracked != 3 {
		t.Fatalf("expected unrestricted window, got %d", all.TotalDaysTracked)
	}
}
