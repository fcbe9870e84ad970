package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/db"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutri-lens.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return ts
}

func mustAddMeal(t *testing.T, sqldb *sql.DB, in service.MealInput) {
	t.Helper()
	if _, err := service.AddMeal(sqldb, in); err != nil {
		t.Fatalf("add meal %q: %v", in.Name, err)
	}
}

// logOnGoalDay records meals and water that hit the default goals exactly.
func logOnGoalDay(t *testing.T, sqldb *sql.DB, date string) {
	t.Helper()
	mustAddMeal(t, sqldb, service.MealInput{Name: "Breakfast", Category: "breakfast", Calories: 600, Protein: 50, Carbs: 60, Fat: 20, Date: date, LoggedAt: at(t, date+" 08:00")})
	mustAddMeal(t, sqldb, service.MealInput{Name: "Lunch", Category: "lunch", Calories: 800, Protein: 50, Carbs: 80, Fat: 25, Date: date, LoggedAt: at(t, date+" 12:30")})
	mustAddMeal(t, sqldb, service.MealInput{Name: "Dinner", Category: "dinner", Calories: 600, Protein: 50, Carbs: 60, Fat: 20, Date: date, LoggedAt: at(t, date+" 19:00")})
	if err := service.SetWater(sqldb, date, 2.0); err != nil {
		t.Fatalf("set water: %v", err)
	}
}
