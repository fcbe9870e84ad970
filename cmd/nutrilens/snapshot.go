package nutrilens

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/WagnerRodrigues181/nutri-lens/internal/render"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
	"github.com/WagnerRodrigues181/nutri-lens/internal/store"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save and restore named copies of the whole history",
	Long: `Snapshots keep a full copy of meals, water, goals, and templates in a
separate file so the history can be rolled back.

  nutri-lens snapshot save before-cleanup --reason "before deleting old meals"
  nutri-lens snapshot list
  nutri-lens snapshot restore before-cleanup`,
}

var snapshotReason string

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current history as a named snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			now := time.Now()
			data, err := service.ExportJSON(sqldb, service.ExportOptions{Now: now})
			if err != nil {
				return err
			}
			return withStore(func(st *store.Store) error {
				info, err := st.Save(args[0], snapshotReason, data, now)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %s (%d days, %d meals)\n", info.Name, info.Days, info.Meals)
				return nil
			})
		})
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			list, err := st.List()
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), list, func(w io.Writer) error {
				return render.Snapshots(w, list)
			})
		})
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Replace the current history with a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			snap, err := st.Get(args[0])
			if err != nil {
				return err
			}
			return withDB(func(sqldb *sql.DB) error {
				report, err := service.ApplyImport(sqldb, service.ImportFromExport(&snap.Export), service.ImportOptions{
					Mode: service.ImportModeReplace,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored snapshot %s (%d days, %d meals)\n", snap.Name, report.Days, report.Inserted)
				return nil
			})
		})
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a snapshot",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			if err := st.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotListCmd, snapshotRestoreCmd, snapshotDeleteCmd)
	snapshotSaveCmd.Flags().StringVar(&snapshotReason, "reason", "", "Why the snapshot was taken")
}
