package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
	"github.com/WagnerRodrigues181/nutri-lens/internal/i18n"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

// AchievementsReport evaluates every achievement against the stored history.
// Unlocked entries carry the first time they were recorded as unlocked, or
// now when they have not been recorded yet.
func AchievementsReport(db *sql.DB, locale i18n.Locale, now time.Time) ([]analytics.Achievement, error) {
	now = nowOr(now)
	list, err := evaluateAchievements(db, locale, now)
	if err != nil {
		return nil, err
	}
	ledger, err := loadUnlocks(db)
	if err != nil {
		return nil, err
	}
	for i, a := range list {
		if !a.IsUnlocked {
			continue
		}
		if at, ok := ledger[a.ID]; ok {
			list[i].UnlockedAt = &at
		}
	}
	return list, nil
}

// RecordAchievementUnlocks stores the unlock time of achievements that are
// unlocked now but were never recorded. It returns the ids it recorded.
// Recorded unlocks are never removed.
func RecordAchievementUnlocks(db *sql.DB, now time.Time) ([]string, error) {
	now = nowOr(now)
	list, err := evaluateAchievements(db, i18n.DefaultLocale, now)
	if err != nil {
		return nil, err
	}
	ledger, err := loadUnlocks(db)
	if err != nil {
		return nil, err
	}

	recorded := make([]string, 0)
	for _, a := range list {
		if !a.IsUnlocked {
			continue
		}
		if _, ok := ledger[a.ID]; ok {
			continue
		}
		if _, err := db.Exec(`INSERT OR IGNORE INTO achievement_unlocks(achievement_id, unlocked_at) VALUES(?, ?)`, a.ID, formatTimestamp(now)); err != nil {
			return nil, fmt.Errorf("record achievement %s: %w", a.ID, err)
		}
		recorded = append(recorded, a.ID)
	}
	return recorded, nil
}

func evaluateAchievements(db *sql.DB, locale i18n.Locale, now time.Time) ([]analytics.Achievement, error) {
	history, err := LoadHistory(db, "", "")
	if err != nil {
		return nil, err
	}
	goals, err := CurrentGoals(db, now.Format(model.DayLayout))
	if err != nil {
		return nil, err
	}
	streak := analytics.CalculateCurrentStreak(history, goals)
	return i18n.CheckAchievements(history, streak, locale, now), nil
}

func loadUnlocks(db *sql.DB) (map[string]time.Time, error) {
	rows, err := db.Query(`SELECT achievement_id, unlocked_at FROM achievement_unlocks`)
	if err != nil {
		return nil, fmt.Errorf("load achievement unlocks: %w", err)
	}
	defer rows.Close()
	out := map[string]time.Time{}
	for rows.Next() {
		var id, at string
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("scan achievement unlock: %w", err)
		}
		t, err := parseTimestamp(at)
		if err != nil {
			return nil, err
		}
		out[id] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate achievement unlocks: %w", err)
	}
	return out, nil
}
