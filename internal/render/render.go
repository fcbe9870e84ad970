// Package render writes reports as terminal tables or indented JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/WagnerRodrigues181/nutri-lens/internal/analytics"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
	"github.com/WagnerRodrigues181/nutri-lens/internal/store"
)

func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func newTable(w io.Writer, header []string, align ...int) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	if len(align) > 0 {
		tw.SetColumnAlignment(align)
	}
	tw.SetAutoWrapText(false)
	return tw
}

const (
	left  = tablewriter.ALIGN_LEFT
	right = tablewriter.ALIGN_RIGHT
)

func grams(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func kcal(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func liters(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// bar draws a ten-cell gauge; values past 100% fill the gauge and are marked.
func bar(percent int) string {
	filled := min(max(percent, 0), 100) / 10
	out := "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + "]"
	if percent > 100 {
		out += "+"
	}
	return out
}

func Meals(w io.Writer, meals []model.Meal) error {
	tw := newTable(w, []string{"ID", "DATE", "TIME", "CATEGORY", "NAME", "KCAL", "PROTEIN", "CARBS", "FAT"},
		left, left, left, left, left, right, right, right, right)
	for _, m := range meals {
		tw.Append([]string{
			shortID(m.ID),
			m.Date,
			m.Timestamp.In(time.Local).Format("15:04"),
			string(m.Category),
			m.Name,
			kcal(m.Calories),
			grams(m.Protein),
			grams(m.Carbs),
			grams(m.Fat),
		})
	}
	tw.Render()
	return nil
}

// shortID keeps the first uuid group, enough to tell meals apart on screen.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func Day(w io.Writer, s *service.DayStatus) error {
	fmt.Fprintf(w, "%s\n\n", s.Date)
	if len(s.Meals) > 0 {
		if err := Meals(w, s.Meals); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	tw := newTable(w, []string{"METRIC", "CONSUMED", "GOAL", "REMAINING", "PROGRESS", ""},
		left, right, right, right, right, left)
	rows := []struct {
		name                  string
		current, goal, remain string
		percent               int
	}{
		{"calories (kcal)", kcal(s.TotalMacros.Calories), kcal(s.Goals.Calories), kcal(s.Remaining.Calories), s.Progress.Calories},
		{"protein (g)", grams(s.TotalMacros.Protein), grams(s.Goals.Protein), grams(s.Remaining.Protein), s.Progress.Protein},
		{"carbs (g)", grams(s.TotalMacros.Carbs), grams(s.Goals.Carbs), grams(s.Remaining.Carbs), s.Progress.Carbs},
		{"fat (g)", grams(s.TotalMacros.Fat), grams(s.Goals.Fat), grams(s.Remaining.Fat), s.Progress.Fat},
		{"water (L)", liters(s.Water), liters(s.Goals.Water), liters(s.Remaining.Water), s.Progress.Water},
	}
	for _, r := range rows {
		tw.Append([]string{r.name, r.current, r.goal, r.remain, fmt.Sprintf("%d%%", r.percent), bar(r.percent)})
	}
	tw.Render()

	fmt.Fprintf(w, "\nmacro split: protein %d%% / carbs %d%% / fat %d%%\n",
		s.Distribution.Protein, s.Distribution.Carbs, s.Distribution.Fat)
	fmt.Fprintf(w, "accuracy: %d%%  goals met: %s  streak: %d (best %d)\n",
		s.Accuracy, YesNo(s.GoalsMet), s.Streak.Current, s.Streak.Longest)
	if len(s.Insights) > 0 {
		fmt.Fprintln(w)
		return Insights(w, s.Insights)
	}
	return nil
}

func Insights(w io.Writer, insights []analytics.Insight) error {
	for _, in := range insights {
		if _, err := fmt.Fprintf(w, "%s %s\n", in.Icon, in.Message); err != nil {
			return err
		}
	}
	return nil
}

func Statistics(w io.Writer, s *service.StatisticsStatus) error {
	window := "all time"
	if s.Days > 0 {
		window = fmt.Sprintf("%s .. %s (%d days)", s.From, s.To, s.Days)
	}
	tw := newTable(w, []string{"FIELD", "VALUE"}, left, right)
	tw.Append([]string{"window", window})
	tw.Append([]string{"days tracked", strconv.Itoa(s.TotalDaysTracked)})
	tw.Append([]string{"days on target", strconv.Itoa(s.GoalsMetCount)})
	tw.Append([]string{"avg calories (kcal)", strconv.Itoa(s.AverageCalories)})
	tw.Append([]string{"avg protein (g)", strconv.Itoa(s.AverageProtein)})
	tw.Append([]string{"avg carbs (g)", strconv.Itoa(s.AverageCarbs)})
	tw.Append([]string{"avg fat (g)", strconv.Itoa(s.AverageFat)})
	tw.Append([]string{"avg water (L)", strconv.FormatFloat(s.AverageWater, 'f', 1, 64)})
	if s.TotalDaysTracked > 0 {
		tw.Append([]string{"best day", fmt.Sprintf("%s (%d%%)", s.BestDay.Date, s.BestDay.Accuracy)})
		tw.Append([]string{"worst day", fmt.Sprintf("%s (%d%%)", s.WorstDay.Date, s.WorstDay.Accuracy)})
	}
	tw.Append([]string{"current streak", strconv.Itoa(s.Streak.Current)})
	tw.Append([]string{"longest streak", strconv.Itoa(s.Streak.Longest)})
	tw.Render()
	return nil
}

func Streak(w io.Writer, s analytics.StreakStats) error {
	tw := newTable(w, []string{"CURRENT", "LONGEST", "TODAY COMPLETE"}, right, right, left)
	tw.Append([]string{strconv.Itoa(s.Current), strconv.Itoa(s.Longest), YesNo(s.TodayComplete)})
	tw.Render()
	return nil
}

func Achievements(w io.Writer, list []analytics.Achievement) error {
	tw := newTable(w, []string{"", "ACHIEVEMENT", "DESCRIPTION", "STATUS", "UNLOCKED AT"})
	for _, a := range list {
		status, when := "locked", ""
		if a.IsUnlocked {
			status = "unlocked"
			if a.UnlockedAt != nil {
				when = a.UnlockedAt.In(time.Local).Format("2006-01-02 15:04")
			}
		}
		tw.Append([]string{a.Icon, a.Title, a.Description, status, when})
	}
	tw.Render()
	return nil
}

func Templates(w io.Writer, list []model.MealTemplate) error {
	tw := newTable(w, []string{"ID", "FAV", "NAME", "CATEGORY", "KCAL", "PROTEIN", "CARBS", "FAT"},
		left, left, left, left, right, right, right, right)
	for _, t := range list {
		fav := ""
		if t.IsFavorite {
			fav = "*"
		}
		tw.Append([]string{shortID(t.ID), fav, t.Name, string(t.Category), kcal(t.Calories), grams(t.Protein), grams(t.Carbs), grams(t.Fat)})
	}
	tw.Render()
	return nil
}

func Goals(w io.Writer, g model.DailyGoals) error {
	tw := newTable(w, []string{"CALORIES", "PROTEIN", "CARBS", "FAT", "WATER"}, right, right, right, right, right)
	tw.Append([]string{kcal(g.Calories), grams(g.Protein), grams(g.Carbs), grams(g.Fat), liters(g.Water)})
	tw.Render()
	return nil
}

func GoalHistory(w io.Writer, list []model.GoalVersion) error {
	tw := newTable(w, []string{"EFFECTIVE", "CALORIES", "PROTEIN", "CARBS", "FAT", "WATER"}, left, right, right, right, right, right)
	for _, g := range list {
		tw.Append([]string{g.EffectiveDate, kcal(g.Calories), grams(g.Protein), grams(g.Carbs), grams(g.Fat), liters(g.Water)})
	}
	tw.Render()
	return nil
}

func Snapshots(w io.Writer, list []store.SnapshotInfo) error {
	tw := newTable(w, []string{"NAME", "CREATED", "DAYS", "MEALS", "REASON"}, left, left, right, right, left)
	for _, s := range list {
		tw.Append([]string{s.Name, s.CreatedAt.In(time.Local).Format("2006-01-02 15:04"), strconv.Itoa(s.Days), strconv.Itoa(s.Meals), s.Reason})
	}
	tw.Render()
	return nil
}

func ImportReport(w io.Writer, r service.ImportReport) error {
	prefix := ""
	if r.DryRun {
		prefix = "dry run: "
	}
	_, err := fmt.Fprintf(w, "%simported %d days: %d meals inserted, %d updated, %d skipped, %d templates, %d goal versions\n",
		prefix, r.Days, r.Inserted, r.Updated, r.Skipped, r.Templates, r.GoalVersions)
	if err != nil {
		return err
	}
	for _, warn := range r.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warn); err != nil {
			return err
		}
	}
	return nil
}

func YesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
