package service

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/WagnerRodrigues181/nutri-lens/internal/i18n"
)

const ConfigLocale = "locale"

// setting normalizes a value for one known key.
type setting func(value string) (string, error)

var settings = map[string]setting{
	ConfigLocale: func(v string) (string, error) {
		l, err := i18n.ParseLocale(v)
		if err != nil {
			return "", shapeError(ConfigLocale, "%s", err.Error())
		}
		return string(l), nil
	},
}

// ConfigKeys lists the settings that can be stored, sorted.
func ConfigKeys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type ConfigEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func lookupSetting(key string) (string, setting, error) {
	key = normalizeName(key)
	normalize, ok := settings[key]
	if !ok {
		return "", nil, shapeError("key", "unknown setting %q (known: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	return key, normalize, nil
}

// SetConfig stores value under a known key after normalizing it and returns
// the stored form.
func SetConfig(db *sql.DB, key, value string) (string, error) {
	key, normalize, err := lookupSetting(key)
	if err != nil {
		return "", err
	}
	value, err = normalize(strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	_, err = db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return "", fmt.Errorf("store setting %s: %w", key, err)
	}
	return value, nil
}

// GetConfig returns the stored value for key; ok is false when it was never
// set.
func GetConfig(db *sql.DB, key string) (value string, ok bool, err error) {
	key, _, err = lookupSetting(key)
	if err != nil {
		return "", false, err
	}
	err = db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read setting %s: %w", key, err)
	}
	return value, true, nil
}

// ListConfig returns every stored setting ordered by key.
func ListConfig(db *sql.DB) ([]ConfigEntry, error) {
	rows, err := db.Query(`SELECT key, value, updated_at FROM app_config ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	entries := make([]ConfigEntry, 0)
	for rows.Next() {
		var e ConfigEntry
		if err := rows.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return entries, nil
}

// ResolveLocale picks the explicit override, then the stored locale, then
// the default.
func ResolveLocale(db *sql.DB, override string) (i18n.Locale, error) {
	if strings.TrimSpace(override) != "" {
		return i18n.ParseLocale(override)
	}
	stored, ok, err := GetConfig(db, ConfigLocale)
	if err != nil {
		return "", err
	}
	if !ok {
		return i18n.DefaultLocale, nil
	}
	return i18n.ParseLocale(stored)
}
