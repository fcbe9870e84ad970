package analytics_test

import (
	"testing"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

func uniform(p int) model.GoalsProgress {
	return model.GoalsProgress{Calories: p, Protein: p, Carbs: p, Fat: p, Water: p}
}

func TestAccuracyIsSymmetric(t *testing.T) {
	t.Parallel()
	for p := 0; p <= 200; p++ {
		if a, b := analytics.Accuracy(uniform(p)), analytics.Accuracy(uniform(200-p)); a != b {
			t.Fatalf("accuracy(%d)=%d but accuracy(%d)=%d", p, a, 200-p, b)
		}
	}
}

func TestAccuracyBounds(t *testing.T) {
	t.Parallel()
	if got := analytics.Accuracy(uniform(100)); got != 100 {
		t.Fatalf("expected 100 on target, got %d", got)
	}
	if got := analytics.Accuracy(uniform(350)); got != 0 {
		t.Fatalf("expected far overshoot to floor at 0, got %d", got)
	}
	mixed := model.GoalsProgress{Calories: 100, Protein: 90, Carbs: 120, Fat: 300, Water: 0}
	// (100 + 90 + 80 + 0 + 0) / 5
	if got := analytics.Accuracy(mixed); got != 54 {
		t.Fatalf("expected 54, got %d", got)
	}
}

func TestCalculateDayAccuracy(t *testing.T) {
	t.Parallel()
	h := historyOf(onGoal("2026-03-01"), lowDay("2026-03-02"))
	if got := analytics.CalculateDayAccuracy(h, "2026-03-01", testGoals()); got != 100 {
		t.Fatalf("expected perfect day to score 100, got %d", got)
	}
	if got := analytics.CalculateDayAccuracy(h, "2026-03-02", testGoals()); got != 50 {
		t.Fatalf("expected half day to score 50, got %d", got)
	}
	if got := analytics.CalculateDayAccuracy(h, "2026-03-09", testGoals()); got != 0 {
		t.Fatalf("expected missing day to score 0, got %d", got)
	}
}
