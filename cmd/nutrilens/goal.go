package nutrilens

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
	"github.com/WagnerRodrigues181/nutri-lens/internal/render"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage daily nutrition and water goals",
}

var (
	goalCalories float64
	goalProtein  float64
	goalCarbs    float64
	goalFat      float64
	goalWater    float64
	goalDate     string
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set daily goals with an effective date",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.SetGoalsInput{
			Goals: model.DailyGoals{
				Calories: goalCalories,
				Protein:  goalProtein,
				Carbs:    goalCarbs,
				Fat:      goalFat,
				Water:    goalWater,
			},
			EffectiveDate: goalDate,
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetGoals(sqldb, in); err != nil {
				return err
			}
			if in.EffectiveDate == "" {
				in.EffectiveDate = "today"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set goals effective %s\n", in.EffectiveDate)
			return nil
		})
	},
}

var currentGoalDate string

var goalCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the goals in effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			goals, err := service.CurrentGoals(sqldb, currentGoalDate)
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), goals, func(w io.Writer) error {
				return render.Goals(w, goals)
			})
		})
	},
}

var goalHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show goal history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			goals, err := service.GoalHistory(sqldb)
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), goals, func(w io.Writer) error {
				return render.GoalHistory(w, goals)
			})
		})
	},
}

var (
	profileWeight   float64
	profileHeight   float64
	profileAge      int
	profileGender   string
	profileActivity string
	profileGoal     string
	suggestApply    bool
)

var goalSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest daily goals from a body profile",
	Long: "Suggest daily goals using the Mifflin-St Jeor equation, an activity multiplier, " +
		"and a 30/40/30 protein/carbs/fat split. Pass --apply to save them effective today.",
	RunE: func(cmd *cobra.Command, args []string) error {
		goals, err := service.SuggestGoals(model.UserProfile{
			WeightKg:      profileWeight,
			HeightCm:      profileHeight,
			Age:           profileAge,
			Gender:        model.Gender(profileGender),
			ActivityLevel: model.ActivityLevel(profileActivity),
			Goal:          model.WeightGoal(profileGoal),
		})
		if err != nil {
			return err
		}
		if err := output(cmd.OutOrStdout(), goals, func(w io.Writer) error {
			return render.Goals(w, goals)
		}); err != nil {
			return err
		}
		if !suggestApply {
			return nil
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetGoals(sqldb, service.SetGoalsInput{Goals: goals}); err != nil {
				return err
			}
			if !jsonOutput {
				fmt.Fprintln(cmd.OutOrStdout(), "Applied suggested goals effective today")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalCurrentCmd, goalHistoryCmd, goalSuggestCmd)

	defaults := model.DefaultGoals()
	goalSetCmd.Flags().Float64Var(&goalCalories, "calories", 0, "Daily calorie target (kcal)")
	goalSetCmd.Flags().Float64Var(&goalProtein, "protein", 0, "Daily protein target (g)")
	goalSetCmd.Flags().Float64Var(&goalCarbs, "carbs", 0, "Daily carbs target (g)")
	goalSetCmd.Flags().Float64Var(&goalFat, "fat", 0, "Daily fat target (g)")
	goalSetCmd.Flags().Float64Var(&goalWater, "water", defaults.Water, "Daily water target (L)")
	goalSetCmd.Flags().StringVar(&goalDate, "effective-date", "", "Effective date YYYY-MM-DD (default today)")
	_ = goalSetCmd.MarkFlagRequired("calories")
	_ = goalSetCmd.MarkFlagRequired("protein")
	_ = goalSetCmd.MarkFlagRequired("carbs")
	_ = goalSetCmd.MarkFlagRequired("fat")

	goalCurrentCmd.Flags().StringVar(&currentGoalDate, "date", "", "Resolve goals at date YYYY-MM-DD (default today)")

	goalSuggestCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Body weight (kg)")
	goalSuggestCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height (cm)")
	goalSuggestCmd.Flags().IntVar(&profileAge, "age", 0, "Age (years)")
	goalSuggestCmd.Flags().StringVar(&profileGender, "gender", "", "male|female|other")
	goalSuggestCmd.Flags().StringVar(&profileActivity, "activity", string(model.ActivityModerate), "sedentary|light|moderate|active|very_active")
	goalSuggestCmd.Flags().StringVar(&profileGoal, "goal", string(model.GoalMaintain), "lose_weight|maintain|gain_weight|gain_muscle")
	goalSuggestCmd.Flags().BoolVar(&suggestApply, "apply", false, "Save the suggestion as the current goals")
	_ = goalSuggestCmd.MarkFlagRequired("weight")
	_ = goalSuggestCmd.MarkFlagRequired("height")
	_ = goalSuggestCmd.MarkFlagRequired("age")
	_ = goalSuggestCmd.MarkFlagRequired("gender")
}
