package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

type DoctorReport struct {
	InvalidDays       int `json:"invalidDays"`
	InvalidTimestamps int `json:"invalidTimestamps"`
	OutOfRangeMeals   int `json:"outOfRangeMeals"`
	DuplicateMeals    int `json:"duplicateMeals"`
	FixedDuplicates   int `json:"fixedDuplicates,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return r.InvalidDays == 0 && r.InvalidTimestamps == 0 && r.OutOfRangeMeals == 0 && r.DuplicateMeals == 0
}

// RunDoctor checks stored rows against the rules enforced on input. With fix
// set, duplicate meals (same day, name, category and time) are collapsed onto
// the first one logged.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	rows, err := db.Query(`SELECT day, logged_at FROM meals`)
	if err != nil {
		return report, fmt.Errorf("doctor meal query: %w", err)
	}
	for rows.Next() {
		var day, loggedAt string
		if err := rows.Scan(&day, &loggedAt); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor meal scan: %w", err)
		}
		if _, err := time.Parse(model.DayLayout, day); err != nil {
			report.InvalidDays++
		}
		if _, err := parseTimestamp(loggedAt); err != nil {
			report.InvalidTimestamps++
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return report, fmt.Errorf("doctor meal iterate: %w", err)
	}
	_ = rows.Close()

	var badWaterDays int
	if err := db.QueryRow(`SELECT COUNT(1) FROM water_logs WHERE day NOT GLOB '[0-9][0-9][0-9][0-9]-[0-1][0-9]-[0-3][0-9]'`).Scan(&badWaterDays); err != nil {
		return report, fmt.Errorf("doctor water check: %w", err)
	}
	report.InvalidDays += badWaterDays

	if err := db.QueryRow(`
SELECT COUNT(1) FROM meals
WHERE calories > ? OR protein_g > ? OR carbs_g > ? OR fat_g > ?
`, mealCaloriesRange.max, mealMacroRange.max, mealMacroRange.max, mealMacroRange.max).Scan(&report.OutOfRangeMeals); err != nil {
		return report, fmt.Errorf("doctor range check: %w", err)
	}

	if err := db.QueryRow(`
SELECT COALESCE(SUM(cnt-1),0) FROM (
  SELECT COUNT(*) AS cnt
  FROM meals
  GROUP BY day, lower(name), category, logged_at
  HAVING cnt > 1
)
`).Scan(&report.DuplicateMeals); err != nil {
		return report, fmt.Errorf("doctor duplicate query: %w", err)
	}

	if fix && report.DuplicateMeals > 0 {
		res, err := db.Exec(`
DELETE FROM meals
WHERE seq NOT IN (
  SELECT MIN(seq) FROM meals GROUP BY day, lower(name), category, logged_at
)
`)
		if err != nil {
			return report, fmt.Errorf("doctor fix duplicates: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return report, fmt.Errorf("doctor fix duplicates: %w", err)
		}
		report.FixedDuplicates = int(n)
	}

	return report, nil
}
