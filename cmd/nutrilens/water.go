package nutrilens

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track daily water intake (liters)",
}

var waterDate string

var waterSetCmd = &cobra.Command{
	Use:   "set <liters>",
	Short: "Set the day's water total",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		liters, err := parseLiters(args[0])
		if err != nil {
			return err
		}
		day := waterDay()
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetWater(sqldb, day, liters); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water on %s: %.1f L\n", day, liters)
			return nil
		})
	},
}

var waterAddCmd = &cobra.Command{
	Use:   "add <liters>",
	Short: "Add to the day's water total (negative values subtract)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := parseLiters(args[0])
		if err != nil {
			return err
		}
		day := waterDay()
		return withDB(func(sqldb *sql.DB) error {
			total, err := service.AddWater(sqldb, day, delta)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water on %s: %.1f L\n", day, total)
			return nil
		})
	},
}

func parseLiters(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid liters %q", value)
	}
	return v, nil
}

func waterDay() string {
	if d := strings.TrimSpace(waterDate); d != "" {
		return d
	}
	return time.Now().Format(model.DayLayout)
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterSetCmd, waterAddCmd)
	waterCmd.PersistentFlags().StringVar(&waterDate, "date", "", "Day YYYY-MM-DD (default today)")
}
