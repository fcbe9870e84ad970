package nutrilens

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/WagnerRodrigues181/nutri-lens/internal/app"
	"github.com/WagnerRodrigues181/nutri-lens/internal/config"
	"github.com/WagnerRodrigues181/nutri-lens/internal/db"
	"github.com/WagnerRodrigues181/nutri-lens/internal/i18n"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
	"github.com/WagnerRodrigues181/nutri-lens/internal/render"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
	"github.com/WagnerRodrigues181/nutri-lens/internal/store"
)

func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

func resolveSnapshotPath() (string, error) {
	if cfg.SnapshotPath != "" {
		return cfg.SnapshotPath, nil
	}
	return app.DefaultSnapshotPath()
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureParentDir(path); err != nil {
		return err
	}
	sqldb, err := db.OpenMigrated(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()
	log.Debug("opened database", zap.String("path", path))
	return run(sqldb)
}

func withStore(run func(*store.Store) error) error {
	path, err := resolveSnapshotPath()
	if err != nil {
		return err
	}
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return run(st)
}

// resolveLocale applies --locale, then NUTRILENS_LOCALE, then the stored
// setting.
func resolveLocale(sqldb *sql.DB) (i18n.Locale, error) {
	override := localeFlag
	if override == "" && os.Getenv(config.EnvLocale) != "" {
		override = cfg.Locale
	}
	return service.ResolveLocale(sqldb, override)
}

// output prints v as JSON under --json, otherwise through table.
func output(w io.Writer, v any, table func(io.Writer) error) error {
	if jsonOutput {
		return render.JSON(w, v)
	}
	return table(w)
}

func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Now(), nil
	}
	if date == "" {
		date = time.Now().Format(model.DayLayout)
	}
	if timeStr == "" {
		d, err := time.ParseInLocation(model.DayLayout, date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
		}
		now := time.Now()
		return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.Local), nil
	}
	t, err := time.ParseInLocation(model.DayLayout+" 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

// reportNow is the reference time for a report about date: now for today,
// the end of the day for past dates.
func reportNow(date string) (time.Time, error) {
	now := time.Now()
	date = strings.TrimSpace(date)
	if date == "" || date == now.Format(model.DayLayout) {
		return now, nil
	}
	d, err := time.ParseInLocation(model.DayLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return d.Add(24*time.Hour - time.Second), nil
}
