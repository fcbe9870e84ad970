package analytics

import (
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

// ParseDay parses a YYYY-MM-DD key as a UTC calendar day.
func ParseDay(value string) (time.Time, bool) {
	t, err := time.Parse(model.DayLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDay formats t's calendar date in its own location.
func FormatDay(t time.Time) string {
	return t.Format(model.DayLayout)
}

// CalendarDay strips the clock from t, keeping the date as seen in t's location.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func PreviousDay(day string) (string, bool) {
	t, ok := ParseDay(day)
	if !ok {
		return "", false
	}
	return FormatDay(t.AddDate(0, 0, -1)), true
}

// LastNDays returns n day keys ending at today, oldest first.
func LastNDays(today time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	end := CalendarDay(today)
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, FormatDay(end.AddDate(0, 0, -i)))
	}
	return out
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
