package nutrilens

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/WagnerRodrigues181/nutri-lens/internal/config"
	"github.com/WagnerRodrigues181/nutri-lens/internal/logger"
)

var (
	dbPath       string
	snapshotPath string
	localeFlag   string
	logLevel     string
	jsonOutput   bool

	cfg config.Config
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "nutri-lens",
	Short: "nutri-lens tracks meals, water, and nutrition goals from your terminal",
	Long: "nutri-lens is a local-first diet tracker: log meals and water, set daily goals, " +
		"and follow progress, streaks, insights, and achievements.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("db") {
			loaded.DBPath = dbPath
		}
		if cmd.Flags().Changed("snapshots") {
			loaded.SnapshotPath = snapshotPath
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		cfg = loaded

		l, err := logger.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (env NUTRILENS_DB)")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshots", "", "Path to snapshot store (env NUTRILENS_SNAPSHOTS)")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "Message language: pt-BR or en-US (env NUTRILENS_LOCALE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error (env NUTRILENS_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of tables")
}
