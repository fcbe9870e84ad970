package nutrilens

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/WagnerRodrigues181/nutri-lens/internal/render"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
	"github.com/WagnerRodrigues181/nutri-lens/internal/store"
)

var (
	exportFormat  string
	exportCSVKind string
	exportOut     string
	exportFrom    string
	exportTo      string
	importFormat  string
	importIn      string
	importMode    string
	importDryRun  bool
	importNoSnap  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history (json or csv)",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(exportFormat))
		if format != "json" && format != "csv" {
			return fmt.Errorf("unsupported --format %q (use json or csv)", exportFormat)
		}
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.ExportJSON(sqldb, service.ExportOptions{From: exportFrom, To: exportTo})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out := strings.TrimSpace(exportOut); out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := writeExport(w, sqldb, data, format); err != nil {
				return err
			}
			if w != cmd.OutOrStdout() {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d days to %s\n", len(data.History), exportOut)
			}
			return nil
		})
	},
}

func writeExport(w io.Writer, sqldb *sql.DB, data *service.ExportFile, format string) error {
	if format == "json" {
		return service.WriteExportJSON(w, data)
	}
	locale, err := resolveLocale(sqldb)
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(exportCSVKind)) {
	case "days", "":
		return service.WriteDaysCSV(w, data.History, locale)
	case "meals":
		return service.WriteMealsCSV(w, data.History, locale, time.Local)
	}
	return fmt.Errorf("unsupported --csv-kind %q (use days or meals)", exportCSVKind)
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import history (json or csv)",
	Long: "Import a JSON backup or a days/meals CSV in Portuguese or English. " +
		"Before a replace import the current data is saved as a snapshot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		mode, err := service.ParseImportMode(importMode)
		if err != nil {
			return err
		}
		format, err := detectImportFormat(importFormat, importIn)
		if err != nil {
			return err
		}
		f, err := os.Open(importIn)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()

		return withDB(func(sqldb *sql.DB) error {
			if mode == service.ImportModeReplace && !importDryRun && !importNoSnap {
				info, err := snapshotBeforeImport(sqldb)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %s before replacing data\n", info.Name)
			}
			opts := service.ImportOptions{Mode: mode, DryRun: importDryRun}
			var report service.ImportReport
			if format == "csv" {
				locale, err := resolveLocale(sqldb)
				if err != nil {
					return err
				}
				report, err = service.ImportCSV(sqldb, f, service.CSVOptions{Locale: locale, Location: time.Local}, opts)
				if err != nil {
					return err
				}
			} else {
				report, err = service.ImportJSON(sqldb, f, opts)
				if err != nil {
					return err
				}
			}
			log.Info("import finished",
				zap.String("format", format),
				zap.String("mode", string(mode)),
				zap.Int("inserted", report.Inserted),
				zap.Int("updated", report.Updated),
				zap.Int("skipped", report.Skipped))
			return output(cmd.OutOrStdout(), report, func(w io.Writer) error {
				return render.ImportReport(w, report)
			})
		})
	},
}

func detectImportFormat(format, path string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "json", "csv":
		return f, nil
	case "", "auto":
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			return "csv", nil
		}
		return "json", nil
	}
	return "", fmt.Errorf("unsupported --format %q (use auto, json or csv)", format)
}

func snapshotBeforeImport(sqldb *sql.DB) (store.SnapshotInfo, error) {
	now := time.Now()
	data, err := service.ExportJSON(sqldb, service.ExportOptions{Now: now})
	if err != nil {
		return store.SnapshotInfo{}, err
	}
	var info store.SnapshotInfo
	err = withStore(func(st *store.Store) error {
		info, err = st.Save("pre-import-"+now.Format("20060102-150405"), "automatic before replace import", data, now)
		return err
	})
	return info, err
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json|csv")
	exportCmd.Flags().StringVar(&exportCSVKind, "csv-kind", "days", "CSV layout: days|meals")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First day YYYY-MM-DD")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Last day YYYY-MM-DD")

	importCmd.Flags().StringVar(&importFormat, "format", "auto", "Import format: auto|json|csv")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
	importCmd.Flags().StringVar(&importMode, "mode", "merge", "Conflict mode: merge|skip|replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing")
	importCmd.Flags().BoolVar(&importNoSnap, "no-snapshot", false, "Skip the automatic snapshot before replace")
}
