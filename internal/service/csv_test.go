package service_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/i18n"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

func TestWriteDaysCSVLocalizesHeaderAndDates(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	logOnGoalDay(t, db, "2026-03-01")
	history, err := service.LoadHistory(db, "", "")
	if err != nil {
		t.Fatalf("load history: %v", err)
	}

	var pt bytes.Buffer
	if err := service.WriteDaysCSV(&pt, history, i18n.PtBR); err != nil {
		t.Fatalf("write pt csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(pt.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", pt.String())
	}
	if lines[0] != "Data,Calorias (kcal),Proteína (g),Carboidratos (g),Gordura (g),Água (L),Refeições" {
		t.Fatalf("unexpected pt header: %q", lines[0])
	}
	if lines[1] != "01/03/2026,2000,150.0,200.0,65.0,2.0,3" {
		t.Fatalf("unexpected pt row: %q", lines[1])
	}

	var en bytes.Buffer
	if err := service.WriteDaysCSV(&en, history, i18n.EnUS); err != nil {
		t.Fatalf("write en csv: %v", err)
	}
	if !strings.HasPrefix(en.String(), "Date,Calories (kcal),") || !strings.Contains(en.String(), "2026-03-01,2000,") {
		t.Fatalf("unexpected en csv: %q", en.String())
	}
}

func TestDaysCSVImportsAsSummaryMeals(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	input := strings.Join([]string{
		"Data,Calorias (kcal),Proteína (g),Carboidratos (g),Gordura (g),Água (L),Refeições",
		"01/03/2026,1800,120.5,190,60,2.5,4",
		"2/3/2026,0,0,0,0,1.5,0",
		"someday,100,1,1,1,1,1",
	}, "\n")
	report, err := service.ImportCSV(db, strings.NewReader(input), service.CSVOptions{Locale: i18n.PtBR, Now: at(t, "2026-03-03 10:00")}, service.ImportOptions{})
	if err != nil {
		t.Fatalf("import csv: %v", err)
	}
	if report.Days != 2 || report.Inserted != 1 || report.Skipped != 1 || len(report.Warnings) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	history, err := service.LoadHistory(db, "", "")
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	first := history["2026-03-01"]
	if len(first.Meals) != 1 || first.Meals[0].Name != "Dados Importados" || first.TotalMacros.Protein != 120.5 || first.Water != 2.5 {
		t.Fatalf("unexpected summary day: %+v", first)
	}
	if second := history["2026-03-02"]; len(second.Meals) != 0 || second.Water != 1.5 {
		t.Fatalf("unexpected water-only day: %+v", second)
	}
}

func TestMealsCSVRoundTrip(t *testing.T) {
	t.Parallel()
	src := newTestDB(t)
	defer src.Close()

	logOnGoalDay(t, src, "2026-03-01")
	if err := service.SetWater(src, "2026-03-02", 1.5); err != nil {
		t.Fatalf("set water: %v", err)
	}
	history, err := service.LoadHistory(src, "", "")
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	var buf bytes.Buffer
	if err := service.WriteMealsCSV(&buf, history, i18n.EnUS, time.Local); err != nil {
		t.Fatalf("write meals csv: %v", err)
	}
	for _, want := range []string{
		"2026-03-01,08:00,Breakfast,breakfast,600,50.0,60.0,20.0,2\n",
		"2026-03-01,12:30,Lunch,lunch,800,50.0,80.0,25.0,\n",
		"2026-03-02,,,,,,,,1.5\n",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("meals csv missing %q: %q", want, buf.String())
		}
	}

	dst := newTestDB(t)
	defer dst.Close()
	if _, err := service.ImportCSV(dst, &buf, service.CSVOptions{Location: time.Local}, service.ImportOptions{}); err != nil {
		t.Fatalf("import meals csv: %v", err)
	}
	got, err := service.LoadDay(dst, "2026-03-01")
	if err != nil {
		t.Fatalf("load day: %v", err)
	}
	if len(got.Meals) != 3 || got.TotalMacros.Calories != 2000 || got.Water != 2 {
		t.Fatalf("unexpected imported day: %+v", got)
	}
	if got.Meals[1].Name != "Lunch" || got.Meals[1].Timestamp.In(time.Local).Format("15:04") != "12:30" {
		t.Fatalf("unexpected imported meal: %+v", got.Meals[1])
	}
	waterOnly, err := service.LoadDay(dst, "2026-03-02")
	if err != nil {
		t.Fatalf("load water-only day: %v", err)
	}
	if len(waterOnly.Meals) != 0 || waterOnly.Water != 1.5 {
		t.Fatalf("unexpected water-only day: %+v", waterOnly)
	}
}

func TestParseCSVRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", "Date,Calories\n"},
		{"no date column", "Calories,Water\n100,1\n"},
		{"bad number", "Date,Calories\n2026-03-01,lots\n"},
	}
	for _, tc := range cases {
		_, _, err := service.ParseCSV(strings.NewReader(tc.input), service.CSVOptions{})
		if !errors.Is(err, service.ErrInvalidShape) {
			t.Fatalf("%s: expected invalid shape, got %v", tc.name, err)
		}
	}
}
