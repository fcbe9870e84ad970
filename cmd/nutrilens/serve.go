package nutrilens

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/WagnerRodrigues181/nutri-lens/internal/config"
	"github.com/WagnerRodrigues181/nutri-lens/internal/server"
)

var (
	serveAddr    string
	serveOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local HTTP/JSON API and live updates for the dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		locale := localeFlag
		if locale == "" && os.Getenv(config.EnvLocale) != "" {
			locale = cfg.Locale
		}
		return withDB(func(sqldb *sql.DB) error {
			srv, err := server.New(server.Options{
				DB:             sqldb,
				Logger:         log,
				Locale:         strings.TrimSpace(locale),
				RateLimit:      cfg.RateLimit,
				RateBurst:      cfg.RateBurst,
				Timeout:        cfg.Timeout,
				SweepSchedule:  cfg.SweepSchedule,
				AllowedOrigins: serveOrigins,
			})
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving nutri-lens API on http://%s/api/v1\n", addr)
			return srv.Run(ctx, addr)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (env NUTRILENS_ADDR, default 127.0.0.1:8787)")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "origin", nil, "Allowed CORS origins (default any)")
}
