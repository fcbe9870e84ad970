package nutrilens

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/WagnerRodrigues181/nutri-lens/internal/render"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tpl"},
	Short:   "Manage reusable meal templates",
}

var (
	tplName     string
	tplCategory string
	tplCalories float64
	tplProtein  float64
	tplCarbs    float64
	tplFat      float64
	tplFavorite bool
)

var templateAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a meal template",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			t, err := service.CreateTemplate(sqldb, service.TemplateInput{
				Name:       tplName,
				Category:   tplCategory,
				Calories:   tplCalories,
				Protein:    tplProtein,
				Carbs:      tplCarbs,
				Fat:        tplFat,
				IsFavorite: tplFavorite,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created template %s (%s)\n", t.Name, t.ID)
			return nil
		})
	},
}

var tplFavoritesOnly bool

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meal templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			list, err := service.ListTemplates(sqldb, tplFavoritesOnly)
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), list, func(w io.Writer) error {
				return render.Templates(w, list)
			})
		})
	},
}

var tplUnfavorite bool

var templateFavoriteCmd = &cobra.Command{
	Use:   "favorite <id|name>",
	Short: "Mark a template as favorite (or --off to unmark)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			t, err := service.SetTemplateFavorite(sqldb, args[0], !tplUnfavorite)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template %s favorite: %s\n", t.Name, render.YesNo(t.IsFavorite))
			return nil
		})
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:     "delete <id|name>",
	Aliases: []string{"rm"},
	Short:   "Delete a meal template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteTemplate(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s\n", args[0])
			return nil
		})
	},
}

var (
	tplUseDate string
	tplUseTime string
)

var templateUseCmd = &cobra.Command{
	Use:   "use <id|name>",
	Short: "Log a meal from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseDateTimeOrNow(tplUseDate, tplUseTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			m, err := service.AddMealFromTemplate(sqldb, args[0], tplUseDate, at)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added meal %s (%s, %.0f kcal) on %s\n", m.ID, m.Name, m.Calories, m.Date)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateAddCmd, templateListCmd, templateFavoriteCmd, templateDeleteCmd, templateUseCmd)

	templateAddCmd.Flags().StringVar(&tplName, "name", "", "Template name")
	templateAddCmd.Flags().StringVar(&tplCategory, "category", "", "breakfast|lunch|dinner|snack")
	templateAddCmd.Flags().Float64Var(&tplCalories, "calories", 0, "Calories (kcal)")
	templateAddCmd.Flags().Float64Var(&tplProtein, "protein", 0, "Protein (g)")
	templateAddCmd.Flags().Float64Var(&tplCarbs, "carbs", 0, "Carbs (g)")
	templateAddCmd.Flags().Float64Var(&tplFat, "fat", 0, "Fat (g)")
	templateAddCmd.Flags().BoolVar(&tplFavorite, "favorite", false, "Mark as favorite")
	_ = templateAddCmd.MarkFlagRequired("name")
	_ = templateAddCmd.MarkFlagRequired("category")

	templateListCmd.Flags().BoolVar(&tplFavoritesOnly, "favorites", false, "Only favorites")
	templateFavoriteCmd.Flags().BoolVar(&tplUnfavorite, "off", false, "Remove the favorite mark")

	templateUseCmd.Flags().StringVar(&tplUseDate, "date", "", "Day YYYY-MM-DD (default today)")
	templateUseCmd.Flags().StringVar(&tplUseTime, "time", "", "Time HH:MM (default now)")
}
