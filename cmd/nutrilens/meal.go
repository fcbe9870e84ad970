package nutrilens

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/WagnerRodrigues181/nutri-lens/internal/render"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and manage meals",
}

var (
	mealName     string
	mealCategory string
	mealCalories float64
	mealProtein  float64
	mealCarbs    float64
	mealFat      float64
	mealDate     string
	mealTime     string
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		loggedAt, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			m, err := service.AddMeal(sqldb, service.MealInput{
				Name:     mealName,
				Category: mealCategory,
				Calories: mealCalories,
				Protein:  mealProtein,
				Carbs:    mealCarbs,
				Fat:      mealFat,
				LoggedAt: loggedAt,
			})
			if err != nil {
				return err
			}
			log.Info("meal added")
			if jsonOutput {
				return render.JSON(cmd.OutOrStdout(), m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added meal %s (%s, %.0f kcal) on %s\n", m.ID, m.Name, m.Calories, m.Date)
			return nil
		})
	},
}

var (
	listDate     string
	listFromDate string
	listToDate   string
	listCategory string
	listLimit    int
)

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			meals, err := service.ListMeals(sqldb, service.MealFilter{
				Date:     listDate,
				FromDate: listFromDate,
				ToDate:   listToDate,
				Category: listCategory,
				Limit:    listLimit,
			})
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), meals, func(w io.Writer) error {
				return render.Meals(w, meals)
			})
		})
	},
}

var mealEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		up := service.MealUpdate{}
		flags := cmd.Flags()
		if flags.Changed("name") {
			up.Name = &mealName
		}
		if flags.Changed("category") {
			up.Category = &mealCategory
		}
		if flags.Changed("calories") {
			up.Calories = &mealCalories
		}
		if flags.Changed("protein") {
			up.Protein = &mealProtein
		}
		if flags.Changed("carbs") {
			up.Carbs = &mealCarbs
		}
		if flags.Changed("fat") {
			up.Fat = &mealFat
		}
		if flags.Changed("date") {
			up.Date = &mealDate
		}
		if up == (service.MealUpdate{}) {
			return fmt.Errorf("nothing to change; pass at least one field flag")
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.ResolveMealID(sqldb, args[0])
			if err != nil {
				return err
			}
			m, err := service.UpdateMeal(sqldb, id, up)
			if err != nil {
				return err
			}
			if jsonOutput {
				return render.JSON(cmd.OutOrStdout(), m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated meal %s\n", m.ID)
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a logged meal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.ResolveMealID(sqldb, args[0])
			if err != nil {
				return err
			}
			if err := service.DeleteMeal(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", id)
			return nil
		})
	},
}

func addMealFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mealName, "name", "", "Meal name")
	cmd.Flags().StringVar(&mealCategory, "category", "", "breakfast|lunch|dinner|snack")
	cmd.Flags().Float64Var(&mealCalories, "calories", 0, "Calories (kcal)")
	cmd.Flags().Float64Var(&mealProtein, "protein", 0, "Protein (g)")
	cmd.Flags().Float64Var(&mealCarbs, "carbs", 0, "Carbs (g)")
	cmd.Flags().Float64Var(&mealFat, "fat", 0, "Fat (g)")
	cmd.Flags().StringVar(&mealDate, "date", "", "Day YYYY-MM-DD (default today)")
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealEditCmd, mealDeleteCmd)

	addMealFieldFlags(mealAddCmd)
	mealAddCmd.Flags().StringVar(&mealTime, "time", "", "Time HH:MM (default now)")
	_ = mealAddCmd.MarkFlagRequired("name")
	_ = mealAddCmd.MarkFlagRequired("category")

	addMealFieldFlags(mealEditCmd)

	mealListCmd.Flags().StringVar(&listDate, "date", "", "Only this day (YYYY-MM-DD)")
	mealListCmd.Flags().StringVar(&listFromDate, "from", "", "From day (inclusive)")
	mealListCmd.Flags().StringVar(&listToDate, "to", "", "To day (inclusive)")
	mealListCmd.Flags().StringVar(&listCategory, "category", "", "Only this category")
	mealListCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum meals to show")
}
