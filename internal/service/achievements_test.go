package service_test

import (
	"testing"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
	"github.com/WagnerRodrigues181/nutri-lens/internal/i18n"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

func TestRecordAchievementUnlocksKeepsFirstUnlockTime(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	logOnGoalDay(t, db, "2026-03-01")
	logOnGoalDay(t, db, "2026-03-02")

	first := at(t, "2026-03-02 21:00")
	recorded, err := service.RecordAchievementUnlocks(db, first)
	if err != nil {
		t.Fatalf("record unlocks: %v", err)
	}
	if len(recorded) != 2 || recorded[0] != analytics.AchievementFirstMeal || recorded[1] != analytics.AchievementPerfectDay {
		t.Fatalf("unexpected recorded unlocks: %v", recorded)
	}
	again, err := service.RecordAchievementUnlocks(db, at(t, "2026-03-03 09:00"))
	if err != nil {
		t.Fatalf("record unlocks again: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected nothing new, got %v", again)
	}

	list, err := service.AchievementsReport(db, i18n.EnUS, at(t, "2026-03-05 10:00"))
	if err != nil {
		t.Fatalf("achievements report: %v", err)
	}
	if len(list) != len(analytics.Achievements) {
		t.Fatalf("expected %d achievements, got %d", len(analytics.Achievements), len(list))
	}
	for _, a := range list {
		if a.Title == "" || a.Description == "" {
			t.Fatalf("achievement %s is not localized: %+v", a.ID, a)
		}
		switch a.ID {
		case analytics.AchievementFirstMeal, analytics.AchievementPerfectDay:
			if !a.IsUnlocked || a.Progress != 100 || a.UnlockedAt == nil || !a.UnlockedAt.Equal(first) {
				t.Fatalf("expected %s unlocked at %v, got %+v", a.ID, first, a)
			}
		default:
			if a.IsUnlocked || a.UnlockedAt != nil {
				t.Fatalf("expected %s locked, got %+v", a.ID, a)
			}
		}
	}
}

func TestAchievementsReportWithoutLedgerUsesNow(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	logOnGoalDay(t, db, "2026-03-01")
	now := at(t, "2026-03-01 22:00")
	list, err := service.AchievementsReport(db, i18n.PtBR, now)
	if err != nil {
		t.Fatalf("achievements report: %v", err)
	}
	if !list[0].IsUnlocked || list[0].UnlockedAt == nil || !list[0].UnlockedAt.Equal(now) {
		t.Fatalf("expected first meal unlocked now, got %+v", list[0])
	}
}
