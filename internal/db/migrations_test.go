package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/WagnerRodrigues181/nutri-lens/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "nutri-lens.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != db.LatestVersion() {
		t.Fatalf("expected %d migration versions, got %d", db.LatestVersion(), migrationCount)
	}

	for _, table := range []string{"meals", "water_logs", "goals", "meal_templates", "achievement_unlocks", "app_config"} {
		var n int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if n != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}

	var waterColCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM pragma_table_info('goals') WHERE name = 'water_l'`).Scan(&waterColCount); err != nil {
		t.Fatalf("check goals water column: %v", err)
	}
	if waterColCount != 1 {
		t.Fatalf("expected water_l column in goals table")
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected db file to exist: %v", err)
	}
}

func TestMealCategoryConstraint(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "nutri-lens.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	_, err = sqldb.Exec(`
INSERT INTO meals(id, day, name, category, calories, protein_g, carbs_g, fat_g, logged_at)
VALUES('m1', '2026-03-01', 'Soup', 'brunch', 100, 1, 1, 1, '2026-03-01T12:00:00Z')`)
	if err == nil {
		t.Fatalf("expected unknown category to be rejected")
	}
}
