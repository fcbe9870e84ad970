package service

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
)

// ExportFile is the JSON backup format. It matches the files written by the
// nutri-lens web app, plus optional goal history and templates lists. Goals
// holds the goals in effect on the export date.
type ExportFile struct {
	ExportDate  time.Time              `json:"exportDate"`
	Goals       model.DailyGoals       `json:"goals"`
	GoalHistory []model.GoalVersion    `json:"goalHistory,omitempty"`
	History     model.NutritionHistory `json:"history"`
	Templates   []model.MealTemplate   `json:"templates,omitempty"`
}

type ExportOptions struct {
	From string
	To   string
	Now  time.Time
}

// ImportData is a parsed, not yet validated import payload. Goals is nil
// when the source carried none. When GoalHistory is set it is restored as is
// and Goals is ignored.
type ImportData struct {
	Goals       *model.DailyGoals
	GoalHistory []model.GoalVersion
	History     model.NutritionHistory
	Templates   []model.MealTemplate
}

type ImportMode string

const (
	ImportModeMerge   ImportMode = "merge"
	ImportModeSkip    ImportMode = "skip"
	ImportModeReplace ImportMode = "replace"
)

func ParseImportMode(value string) (ImportMode, error) {
	switch m := ImportMode(normalizeName(value)); m {
	case "":
		return ImportModeMerge, nil
	case ImportModeMerge, ImportModeSkip, ImportModeReplace:
		return m, nil
	}
	return "", fmt.Errorf("unsupported import mode %q (use merge|skip|replace)", value)
}

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
	// Now caps the effective date of imported goals that carry no history.
	Now time.Time
}

type ImportReport struct {
	Days         int      `json:"days"`
	Inserted     int      `json:"inserted"`
	Updated      int      `json:"updated"`
	Skipped      int      `json:"skipped"`
	Templates    int      `json:"templates"`
	GoalsSet     bool     `json:"goalsSet"`
	GoalVersions int      `json:"goalVersions"`
	DryRun       bool     `json:"dryRun"`
	Warnings     []string `json:"warnings,omitempty"`
}

func ExportJSON(db *sql.DB, opts ExportOptions) (*ExportFile, error) {
	now := nowOr(opts.Now)
	history, err := LoadHistory(db, opts.From, opts.To)
	if err != nil {
		return nil, err
	}
	goals, err := CurrentGoals(db, now.Format(model.DayLayout))
	if err != nil {
		return nil, err
	}
	versions, err := GoalHistory(db)
	if err != nil {
		return nil, err
	}
	templates, err := ListTemplates(db, false)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		ExportDate:  now.UTC(),
		Goals:       goals,
		GoalHistory: versions,
		History:     history,
		Templates:   templates,
	}, nil
}

func WriteExportJSON(w io.Writer, f *ExportFile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode export json: %w", err)
	}
	return nil
}

// DecodeImportJSON reads an export file. Structural problems are reported
// as ErrInvalidShape.
func DecodeImportJSON(r io.Reader) (*ImportData, error) {
	var raw struct {
		Goals       *model.DailyGoals                `json:"goals"`
		GoalHistory []model.GoalVersion              `json:"goalHistory"`
		History     map[string]*model.DailyNutrition `json:"history"`
		Templates   []model.MealTemplate             `json:"templates"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, shapeError(typeErr.Field, "expected %s, got %s", typeErr.Type, typeErr.Value)
		}
		return nil, shapeError("file", "invalid json: %v", err)
	}
	if raw.History == nil {
		return nil, shapeError("history", "is required")
	}
	data := &ImportData{Goals: raw.Goals, GoalHistory: raw.GoalHistory, History: model.NutritionHistory{}, Templates: raw.Templates}
	for key, day := range raw.History {
		if day == nil {
			return nil, shapeError("history."+key, "must be an object")
		}
		data.History[key] = *day
	}
	return data, nil
}

// ImportFromExport turns a stored export back into an import payload.
func ImportFromExport(f *ExportFile) *ImportData {
	goals := f.Goals
	return &ImportData{Goals: &goals, GoalHistory: f.GoalHistory, History: f.History, Templates: f.Templates}
}

// validateImport checks every record and normalizes day and meal dates. It
// returns warnings for records it repaired.
func validateImport(data *ImportData) ([]string, error) {
	warnings := make([]string, 0)
	if data.Goals != nil {
		if err := ValidateGoals(*data.Goals); err != nil {
			return nil, err
		}
	}
	for i, v := range data.GoalHistory {
		field := fmt.Sprintf("goalHistory[%d]", i)
		if err := validateDay(field+".effectiveDate", v.EffectiveDate); err != nil {
			return nil, err
		}
		if err := ValidateGoals(v.DailyGoals); err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
	}
	for key, day := range data.History {
		if err := validateDay("history."+key, key); err != nil {
			return nil, err
		}
		if day.Date == "" {
			day.Date = key
		}
		if day.Date != key {
			return nil, shapeError("history."+key+".date", "does not match its key")
		}
		if err := waterRange.check("history."+key+".water", day.Water); err != nil {
			return nil, err
		}
		stored := day.TotalMacros
		for i := range day.Meals {
			m := &day.Meals[i]
			if m.Date == "" {
				m.Date = key
			}
			if m.Date != key {
				return nil, shapeError(fmt.Sprintf("history.%s.meals[%d].date", key, i), "does not match its day")
			}
			if err := ValidateMeal(*m); err != nil {
				return nil, fmt.Errorf("history.%s.meals[%d]: %w", key, i, err)
			}
			m.Name = strings.TrimSpace(m.Name)
			m.Category, _ = model.ParseMealCategory(string(m.Category))
		}
		day.Recalculate()
		if stored != (model.Macros{}) && !macrosClose(stored, day.TotalMacros) {
			warnings = append(warnings, fmt.Sprintf("%s: totals recomputed from meals", key))
		}
		data.History[key] = day
	}
	for i, t := range data.Templates {
		if strings.TrimSpace(t.ID) == "" {
			return nil, shapeError(fmt.Sprintf("templates[%d].id", i), "is required")
		}
		if _, err := validateName(fmt.Sprintf("templates[%d].name", i), t.Name); err != nil {
			return nil, err
		}
		if _, err := validateCategory(string(t.Category)); err != nil {
			return nil, err
		}
		if err := ValidateMacros(t.Macros); err != nil {
			return nil, fmt.Errorf("templates[%d]: %w", i, err)
		}
	}
	return warnings, nil
}

func macrosClose(a, b model.Macros) bool {
	const eps = 0.01
	d := func(x, y float64) bool { return x-y < eps && y-x < eps }
	return d(a.Calories, b.Calories) && d(a.Protein, b.Protein) && d(a.Carbs, b.Carbs) && d(a.Fat, b.Fat)
}

// ApplyImport validates data and writes it in one transaction. Nothing is
// written when validation fails or DryRun is set.
func ApplyImport(db *sql.DB, data *ImportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{DryRun: opts.DryRun}
	mode := opts.Mode
	if mode == "" {
		mode = ImportModeMerge
	}
	warnings, err := validateImport(data)
	if err != nil {
		return report, err
	}
	report.Warnings = warnings

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ImportModeReplace {
		if err := clearUserData(tx); err != nil {
			return report, err
		}
	}

	switch {
	case len(data.GoalHistory) > 0:
		for _, v := range data.GoalHistory {
			if err := upsertGoals(tx, v.DailyGoals, v.EffectiveDate); err != nil {
				return report, err
			}
			report.GoalVersions++
		}
		report.GoalsSet = true
	case data.Goals != nil:
		if err := upsertGoals(tx, *data.Goals, importedGoalsDay(data.History, opts.Now)); err != nil {
			return report, err
		}
		report.GoalVersions++
		report.GoalsSet = true
	}

	for _, key := range data.History.SortedDates() {
		day := data.History[key]
		report.Days++
		for _, m := range day.Meals {
			exists, err := mealExists(tx, m.ID)
			if err != nil {
				return report, err
			}
			switch {
			case !exists:
				if err := insertMeal(tx, m); err != nil {
					return report, err
				}
				report.Inserted++
			case mode == ImportModeSkip:
				report.Skipped++
			default:
				if _, err := tx.Exec(`
UPDATE meals
SET day = ?, name = ?, category = ?, calories = ?, protein_g = ?, carbs_g = ?, fat_g = ?, logged_at = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, m.Date, m.Name, string(m.Category), m.Calories, m.Protein, m.Carbs, m.Fat, formatTimestamp(m.Timestamp), m.ID); err != nil {
					return report, fmt.Errorf("update imported meal %s: %w", m.ID, err)
				}
				report.Updated++
			}
		}
		if day.Water > 0 || mode == ImportModeReplace {
			if err := upsertWater(tx, key, day.Water); err != nil {
				return report, err
			}
		}
	}

	for _, t := range data.Templates {
		t.Name = strings.TrimSpace(t.Name)
		if err := insertTemplate(tx, t); err != nil {
			return report, err
		}
		report.Templates++
	}

	if opts.DryRun {
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit import: %w", err)
	}
	return report, nil
}

// importedGoalsDay dates goals that came without history: today, or the
// oldest imported day when that is earlier, so imported days are judged
// against them.
func importedGoalsDay(history model.NutritionHistory, now time.Time) string {
	day := nowOr(now).Format(model.DayLayout)
	if dates := history.SortedDates(); len(dates) > 0 && dates[0] < day {
		day = dates[0]
	}
	return day
}

func ImportJSON(db *sql.DB, r io.Reader, opts ImportOptions) (ImportReport, error) {
	data, err := DecodeImportJSON(r)
	if err != nil {
		return ImportReport{}, err
	}
	return ApplyImport(db, data, opts)
}

func mealExists(tx *sql.Tx, id string) (bool, error) {
	var one int
	err := tx.QueryRow(`SELECT 1 FROM meals WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check existing meal %s: %w", id, err)
	}
	return true, nil
}

// clearUserData removes tracked data. Recorded achievement unlocks and app
// config survive a replace.
func clearUserData(tx *sql.Tx) error {
	stmts := []string{
		`DELETE FROM meals`,
		`DELETE FROM water_logs`,
		`DELETE FROM goals`,
		`DELETE FROM meal_templates`,
	}
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			return fmt.Errorf("clear data for replace mode: %w", err)
		}
	}
	return nil
}
