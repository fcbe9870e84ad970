package service

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/WagnerRodrigues181/nutri-lens/internal/i18n"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

const brDayLayout = "02/01/2006"

var daysHeader = map[i18n.Locale][]string{
	i18n.PtBR: {"Data", "Calorias (kcal)", "Proteína (g)", "Carboidratos (g)", "Gordura (g)", "Água (L)", "Refeições"},
	i18n.EnUS: {"Date", "Calories (kcal)", "Protein (g)", "Carbs (g)", "Fat (g)", "Water (L)", "Meals"},
}

var mealsHeader = map[i18n.Locale][]string{
	i18n.PtBR: {"Data", "Hora", "Refeição", "Categoria", "Calorias (kcal)", "Proteína (g)", "Carboidratos (g)", "Gordura (g)", "Água (L)"},
	i18n.EnUS: {"Date", "Time", "Meal", "Category", "Calories (kcal)", "Protein (g)", "Carbs (g)", "Fat (g)", "Water (L)"},
}

// csvColumns maps lowercased pt-BR and English headers to canonical columns.
var csvColumns = map[string]string{
	"data":             "date",
	"date":             "date",
	"hora":             "time",
	"time":             "time",
	"refeições":        "meals",
	"refeicoes":        "meals",
	"meals":            "meals",
	"refeição":         "meal_name",
	"refeicao":         "meal_name",
	"meal":             "meal_name",
	"meal_name":        "meal_name",
	"categoria":        "category",
	"category":         "category",
	"calorias":         "calories",
	"calorias (kcal)":  "calories",
	"calories":         "calories",
	"calories (kcal)":  "calories",
	"proteína (g)":     "protein",
	"proteina (g)":     "protein",
	"protein":          "protein",
	"protein (g)":      "protein",
	"carboidratos (g)": "carbs",
	"carbs":            "carbs",
	"carbs (g)":        "carbs",
	"gordura (g)":      "fat",
	"fat":              "fat",
	"fat (g)":          "fat",
	"água (l)":         "water",
	"agua (l)":         "water",
	"water":            "water",
	"water (l)":        "water",
}

func formatCSVDay(l i18n.Locale, key string) string {
	if l != i18n.PtBR {
		return key
	}
	t, err := time.Parse(model.DayLayout, key)
	if err != nil {
		return key
	}
	return t.Format(brDayLayout)
}

// WriteDaysCSV writes one row per day that has data, oldest first.
func WriteDaysCSV(w io.Writer, history model.NutritionHistory, l i18n.Locale) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(daysHeader[localeOr(l)]); err != nil {
		return fmt.Errorf("write days csv header: %w", err)
	}
	for _, key := range history.SortedDates() {
		d := history[key]
		row := []string{
			formatCSVDay(localeOr(l), key),
			strconv.FormatFloat(d.TotalMacros.Calories, 'f', 0, 64),
			strconv.FormatFloat(d.TotalMacros.Protein, 'f', 1, 64),
			strconv.FormatFloat(d.TotalMacros.Carbs, 'f', 1, 64),
			strconv.FormatFloat(d.TotalMacros.Fat, 'f', 1, 64),
			strconv.FormatFloat(d.Water, 'f', 1, 64),
			strconv.Itoa(len(d.Meals)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write days csv row %s: %w", key, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMealsCSV writes one row per meal, oldest day first. Times are shown in
// loc. The day's water goes on its first row; a day with water and no meals
// gets a row with the meal columns left empty.
func WriteMealsCSV(w io.Writer, history model.NutritionHistory, l i18n.Locale, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(mealsHeader[localeOr(l)]); err != nil {
		return fmt.Errorf("write meals csv header: %w", err)
	}
	for _, key := range history.SortedDates() {
		day := history[key]
		water := ""
		if day.Water > 0 {
			water = strconv.FormatFloat(day.Water, 'f', -1, 64)
		}
		if len(day.Meals) == 0 {
			if water == "" {
				continue
			}
			row := []string{formatCSVDay(localeOr(l), key), "", "", "", "", "", "", "", water}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write meals csv row %s: %w", key, err)
			}
			continue
		}
		for i, m := range day.Meals {
			row := []string{
				formatCSVDay(localeOr(l), key),
				m.Timestamp.In(loc).Format("15:04"),
				m.Name,
				string(m.Category),
				strconv.FormatFloat(m.Calories, 'f', 0, 64),
				strconv.FormatFloat(m.Protein, 'f', 1, 64),
				strconv.FormatFloat(m.Carbs, 'f', 1, 64),
				strconv.FormatFloat(m.Fat, 'f', 1, 64),
				"",
			}
			if i == 0 {
				row[8] = water
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write meals csv row %s: %w", key, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

type CSVOptions struct {
	Locale i18n.Locale
	// Now stamps meals whose row carries no time.
	Now      time.Time
	Location *time.Location
}

// ParseCSV reads a days or meals CSV in either language. Rows with a meal
// name become meals; other rows with calories become one summary meal for
// the day. Rows with an unreadable date are skipped with a warning.
func ParseCSV(r io.Reader, opts CSVOptions) (*ImportData, []string, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := nowOr(opts.Now)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, shapeError("csv", "read: %v", err)
	}
	if len(records) < 2 {
		return nil, nil, shapeError("csv", "empty or invalid csv file")
	}

	header := make([]string, len(records[0]))
	hasDate := false
	for i, col := range records[0] {
		col = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if canonical, ok := csvColumns[col]; ok {
			col = canonical
		}
		header[i] = col
		hasDate = hasDate || col == "date"
	}
	if !hasDate {
		return nil, nil, shapeError("csv", "required date column missing")
	}

	data := &ImportData{History: model.NutritionHistory{}}
	warnings := make([]string, 0)
	for n, rec := range records[1:] {
		line := n + 2
		row := map[string]string{}
		for i, col := range header {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			}
		}
		if strings.Join(rec, "") == "" {
			continue
		}

		key, ok := parseCSVDay(row["date"])
		if !ok {
			warnings = append(warnings, fmt.Sprintf("line %d: skipped, unreadable date %q", line, row["date"]))
			continue
		}
		var nums [5]float64
		for i, col := range []string{"calories", "protein", "carbs", "fat", "water"} {
			v, err := parseCSVNumber(row[col])
			if err != nil {
				return nil, nil, shapeError(fmt.Sprintf("csv line %d %s", line, col), "%v", err)
			}
			nums[i] = v
		}
		macros := model.Macros{Calories: nums[0], Protein: nums[1], Carbs: nums[2], Fat: nums[3]}
		water := nums[4]

		day := data.History[key]
		day.Date = key
		switch {
		case row["meal_name"] != "":
			category := row["category"]
			if category == "" {
				category = string(model.CategorySnack)
			}
			day.Meals = append(day.Meals, model.Meal{
				ID:        uuid.NewString(),
				Name:      row["meal_name"],
				Category:  model.MealCategory(normalizeName(category)),
				Macros:    macros,
				Timestamp: csvTimestamp(key, row["time"], loc, now),
				Date:      key,
			})
			day.Water += water
		case macros.Calories > 0:
			day.Meals = append(day.Meals, model.Meal{
				ID:        uuid.NewString(),
				Name:      importedMealName(opts.Locale),
				Category:  model.CategorySnack,
				Macros:    macros,
				Timestamp: csvTimestamp(key, row["time"], loc, now),
				Date:      key,
			})
			day.Water = water
		case water > 0:
			day.Water = water
		}
		day.Recalculate()
		data.History[key] = day
	}
	return data, warnings, nil
}

func ImportCSV(db *sql.DB, r io.Reader, csvOpts CSVOptions, opts ImportOptions) (ImportReport, error) {
	data, warnings, err := ParseCSV(r, csvOpts)
	if err != nil {
		return ImportReport{}, err
	}
	report, err := ApplyImport(db, data, opts)
	report.Skipped += len(warnings)
	report.Warnings = append(warnings, report.Warnings...)
	return report, err
}

// parseCSVDay accepts YYYY-MM-DD and DD/MM/YYYY with unpadded day and month.
func parseCSVDay(value string) (string, bool) {
	if value == "" {
		return "", false
	}
	if strings.Contains(value, "/") {
		parts := strings.Split(value, "/")
		if len(parts) != 3 {
			return "", false
		}
		d, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		y, err3 := strconv.Atoi(parts[2])
		if err := errors.Join(err1, err2, err3); err != nil {
			return "", false
		}
		value = fmt.Sprintf("%04d-%02d-%02d", y, m, d)
	}
	if _, err := time.Parse(model.DayLayout, value); err != nil {
		return "", false
	}
	return value, true
}

func parseCSVNumber(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return v, nil
}

func csvTimestamp(key, clock string, loc *time.Location, fallback time.Time) time.Time {
	if clock != "" {
		if t, err := time.ParseInLocation(model.DayLayout+" 15:04", key+" "+clock, loc); err == nil {
			return t
		}
	}
	day, _ := time.ParseInLocation(model.DayLayout, key, loc)
	h, m, s := fallback.In(loc).Clock()
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second)
}

func importedMealName(l i18n.Locale) string {
	if l == i18n.EnUS {
		return "Imported Data"
	}
	return "Dados Importados"
}
