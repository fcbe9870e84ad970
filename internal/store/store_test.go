package store_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
	"github.com/WagnerRodrigues181/nutri-lens/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "nested", "snapshots.bolt"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleExport() *service.ExportFile {
	day := model.DailyNutrition{
		Date: "2026-03-01",
		Meals: []model.Meal{{
			ID:        "m1",
			Name:      "Feijoada",
			Category:  model.CategoryLunch,
			Macros:    model.Macros{Calories: 700, Protein: 40, Carbs: 60, Fat: 30},
			Timestamp: time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC),
			Date:      "2026-03-01",
		}},
		Water: 1.5,
	}
	day.Recalculate()
	return &service.ExportFile{
		ExportDate: time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC),
		Goals:      model.DefaultGoals(),
		History:    model.NutritionHistory{day.Date: day},
	}
}

func TestOpenWritesSchemaVersion(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	v, err := s.SchemaVersion()
	if err != nil || v != "1" {
		t.Fatalf("expected schema version 1, got %q (%v)", v, err)
	}
}

func TestSaveGetListDelete(t *testing.T) {
	t.Parallel()
	s := testStore(t)

	first := time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)
	info, err := s.Save(" before-import ", "auto", sampleExport(), first)
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if info.Name != "before-import" || info.Days != 1 || info.Meals != 1 {
		t.Fatalf("unexpected snapshot info: %+v", info)
	}
	if _, err := s.Save("weekly", "", sampleExport(), first.Add(time.Hour)); err != nil {
		t.Fatalf("save second snapshot: %v", err)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(list) != 2 || list[0].Name != "weekly" || list[1].Reason != "auto" {
		t.Fatalf("expected newest first, got %+v", list)
	}

	snap, err := s.Get("before-import")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	day := snap.Export.History["2026-03-01"]
	if len(day.Meals) != 1 || day.Meals[0].Name != "Feijoada" || day.TotalMacros.Calories != 700 {
		t.Fatalf("unexpected snapshot payload: %+v", snap.Export)
	}

	if err := s.Delete("before-import"); err != nil {
		t.Fatalf("delete snapshot: %v", err)
	}
	if _, err := s.Get("before-import"); !errors.Is(err, store.ErrSnapshotNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := s.Delete("before-import"); !errors.Is(err, store.ErrSnapshotNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestSaveRejectsBlankName(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	if _, err := s.Save("  ", "", sampleExport(), time.Time{}); err == nil {
		t.Fatalf("expected blank name to be rejected")
	}
}
