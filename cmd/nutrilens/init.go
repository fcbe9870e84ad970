package nutrilens

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WagnerRodrigues181/nutri-lens/internal/app"
	"github.com/WagnerRodrigues181/nutri-lens/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local nutri-lens database",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized nutri-lens database at %s (schema v%d)\n", path, db.LatestVersion())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
