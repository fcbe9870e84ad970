package nutrilens

import (
	"database/sql"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/WagnerRodrigues181/nutri-lens/internal/render"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

var reportDate string

func loadDayReport(sqldb *sql.DB) (*service.DayStatus, error) {
	now, err := reportNow(reportDate)
	if err != nil {
		return nil, err
	}
	locale, err := resolveLocale(sqldb)
	if err != nil {
		return nil, err
	}
	return service.DayReport(sqldb, service.ReportInput{Date: reportDate, Now: now, Locale: locale})
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the day's intake, goal progress, streak, and insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			status, err := loadDayReport(sqldb)
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), status, func(w io.Writer) error {
				return render.Day(w, status)
			})
		})
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show the day's insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			status, err := loadDayReport(sqldb)
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), status.Insights, func(w io.Writer) error {
				return render.Insights(w, status.Insights)
			})
		})
	},
}

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show averages, best and worst day over a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			s, err := service.StatisticsReport(sqldb, statsDays, time.Now())
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), s, func(w io.Writer) error {
				return render.Statistics(w, s)
			})
		})
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current and longest streak of days at 80% of every goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			s, err := service.StreakReport(sqldb, time.Now())
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), s, func(w io.Writer) error {
				return render.Streak(w, s)
			})
		})
	},
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievements and when they were unlocked",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			now := time.Now()
			unlocked, err := service.RecordAchievementUnlocks(sqldb, now)
			if err != nil {
				return err
			}
			if len(unlocked) > 0 {
				log.Info("achievements unlocked", zap.Strings("ids", unlocked))
			}
			locale, err := resolveLocale(sqldb)
			if err != nil {
				return err
			}
			list, err := service.AchievementsReport(sqldb, locale, now)
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), list, func(w io.Writer) error {
				return render.Achievements(w, list)
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd, insightsCmd, statsCmd, streakCmd, achievementsCmd)
	todayCmd.Flags().StringVar(&reportDate, "date", "", "Date YYYY-MM-DD (default today)")
	insightsCmd.Flags().StringVar(&reportDate, "date", "", "Date YYYY-MM-DD (default today)")
	statsCmd.Flags().IntVar(&statsDays, "days", 30, "Window in days ending today (0 = all history)")
}
