// Package service implements the tracking operations on top of the SQLite
// store and feeds stored data into the analytics core.
package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

var ErrNotFound = errors.New("not found")

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// resolveDay validates value as a day key, or derives one from fallback when
// value is empty.
func resolveDay(value string, fallback time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nowOr(fallback).Format(model.DayLayout), nil
	}
	if err := validateDay("date", value); err != nil {
		return "", err
	}
	return value, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

const mealColumns = `id, day, name, category, calories, protein_g, carbs_g, fat_g, logged_at`

func scanMeal(s rowScanner) (model.Meal, error) {
	var m model.Meal
	var category, loggedAt string
	if err := s.Scan(&m.ID, &m.Date, &m.Name, &category, &m.Calories, &m.Protein, &m.Carbs, &m.Fat, &loggedAt); err != nil {
		return model.Meal{}, err
	}
	m.Category = model.MealCategory(category)
	ts, err := parseTimestamp(loggedAt)
	if err != nil {
		return model.Meal{}, err
	}
	m.Timestamp = ts
	return m, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertMeal(x execer, m model.Meal) error {
	_, err := x.Exec(`
INSERT INTO meals(`+mealColumns+`)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, m.ID, m.Date, m.Name, string(m.Category), m.Calories, m.Protein, m.Carbs, m.Fat, formatTimestamp(m.Timestamp))
	if err != nil {
		return fmt.Errorf("insert meal %q: %w", m.Name, err)
	}
	return nil
}

func upsertWater(x execer, day string, liters float64) error {
	_, err := x.Exec(`
INSERT INTO water_logs(day, liters, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(day) DO UPDATE SET liters=excluded.liters, updated_at=excluded.updated_at
`, day, liters)
	if err != nil {
		return fmt.Errorf("set water for %s: %w", day, err)
	}
	return nil
}
