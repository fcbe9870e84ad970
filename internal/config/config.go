// Package config resolves runtime settings from defaults, an optional .env
// file, and NUTRILENS_* environment variables. CLI flags override the result.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/WagnerRodrigues181/nutri-lens/internal/app"
)

const (
	EnvDB            = "NUTRILENS_DB"
	EnvSnapshots     = "NUTRILENS_SNAPSHOTS"
	EnvLocale        = "NUTRILENS_LOCALE"
	EnvLogLevel      = "NUTRILENS_LOG_LEVEL"
	EnvAddr          = "NUTRILENS_ADDR"
	EnvRate          = "NUTRILENS_RATE"
	EnvBurst         = "NUTRILENS_BURST"
	EnvSweepSchedule = "NUTRILENS_SWEEP_SCHEDULE"
	EnvTimeout       = "NUTRILENS_TIMEOUT"
)

type Config struct {
	DBPath        string
	SnapshotPath  string
	Locale        string
	LogLevel      string
	Addr          string
	RateLimit     float64
	RateBurst     int
	SweepSchedule string
	Timeout       time.Duration
}

func Defaults() (Config, error) {
	dbPath, err := app.DefaultDBPath()
	if err != nil {
		return Config{}, err
	}
	snapPath, err := app.DefaultSnapshotPath()
	if err != nil {
		return Config{}, err
	}
	return Config{
		DBPath:        dbPath,
		SnapshotPath:  snapPath,
		Locale:        "pt-BR",
		LogLevel:      "warn",
		Addr:          "127.0.0.1:8787",
		RateLimit:     20,
		RateBurst:     40,
		SweepSchedule: "@every 15m",
		Timeout:       30 * time.Second,
	}, nil
}

// Load reads envFiles (missing files are ignored) and then the environment.
// With no envFiles, ./.env is tried.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFilesOrDefault(envFiles) {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	cfg, err := Defaults()
	if err != nil {
		return Config{}, err
	}
	cfg.DBPath = getEnv(EnvDB, cfg.DBPath)
	cfg.SnapshotPath = getEnv(EnvSnapshots, cfg.SnapshotPath)
	cfg.Locale = getEnv(EnvLocale, cfg.Locale)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
	cfg.Addr = getEnv(EnvAddr, cfg.Addr)
	cfg.SweepSchedule = getEnv(EnvSweepSchedule, cfg.SweepSchedule)

	if v := os.Getenv(EnvRate); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 {
			return Config{}, fmt.Errorf("%s must be a non-negative number", EnvRate)
		}
		cfg.RateLimit = rate
	}
	if v := os.Getenv(EnvBurst); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst < 1 {
			return Config{}, fmt.Errorf("%s must be a positive integer", EnvBurst)
		}
		cfg.RateBurst = burst
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%s must be a positive duration", EnvTimeout)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

func envFilesOrDefault(files []string) []string {
	if len(files) == 0 {
		return []string{".env"}
	}
	return files
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
