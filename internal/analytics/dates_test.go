package analytics_test

import (
	"testing"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
)

func TestPreviousDayCrossesLeapDay(t *testing.T) {
	t.Parallel()
	got, ok := analytics.PreviousDay("2024-03-01")
	if !ok || got != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %q (%v)", got, ok)
	}
	if _, ok := analytics.PreviousDay("03/01/2024"); ok {
		t.Fatalf("expected malformed day to fail")
	}
}

func TestLastNDays(t *testing.T) {
	t.Parallel()
	got := analytics.LastNDays(dayAt("2026-03-02"), 3)
	want := []string{"2026-02-28", "2026-03-01", "2026-03-02"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if analytics.LastNDays(dayAt("2026-03-02"), 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}
