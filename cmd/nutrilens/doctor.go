package nutrilens

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WagnerRodrigues181/nutri-lens/internal/render"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			if jsonOutput {
				if err := render.JSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Invalid day keys: %d\n", report.InvalidDays)
				fmt.Fprintf(cmd.OutOrStdout(), "Invalid timestamps: %d\n", report.InvalidTimestamps)
				fmt.Fprintf(cmd.OutOrStdout(), "Out-of-range meals: %d\n", report.OutOfRangeMeals)
				fmt.Fprintf(cmd.OutOrStdout(), "Duplicate meal rows: %d\n", report.DuplicateMeals)
			}
			if doctorFix {
				if !jsonOutput {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed duplicate rows: %d\n", report.FixedDuplicates)
				}
				// Re-check after fixes so the exit status reflects the final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Remove duplicate meal rows")
}
