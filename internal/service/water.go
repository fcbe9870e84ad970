package service

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
)

func GetWater(db *sql.DB, day string) (float64, error) {
	day = strings.TrimSpace(day)
	if err := validateDay("date", day); err != nil {
		return 0, err
	}
	var liters float64
	err := db.QueryRow(`SELECT liters FROM water_logs WHERE day = ?`, day).Scan(&liters)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get water for %s: %w", day, err)
	}
	return liters, nil
}

// SetWater replaces the day's water total.
func SetWater(db *sql.DB, day string, liters float64) error {
	day = strings.TrimSpace(day)
	if err := validateDay("date", day); err != nil {
		return err
	}
	if err := ValidateWater(liters); err != nil {
		return err
	}
	return upsertWater(db, day, liters)
}

// AddWater adjusts the day's total by delta and returns the new total. The
// result must stay within the daily water range.
func AddWater(db *sql.DB, day string, delta float64) (float64, error) {
	current, err := GetWater(db, day)
	if err != nil {
		return 0, err
	}
	total := math.Round((current+delta)*1000) / 1000
	if err := ValidateWater(total); err != nil {
		return 0, err
	}
	if err := upsertWater(db, strings.TrimSpace(day), total); err != nil {
		return 0, err
	}
	return total, nil
}
