package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the equity engine.
type Config struct {
	SQLiteDSN       string
	HolidayAPIURL   string
	HolidayTimeout  time.Duration
	HolidayCacheTTL time.Duration
	SuggestionCount int
	OfflineHolidays bool
	LogLevel        string
}

// Load parses configuration values from the current process environment.
//
// Every field has a working default so the binary runs with an empty
// environment; set values are validated and reported together.
func Load() (Config, error) {
	cfg := Config{
		SQLiteDSN:       "file:equity.db?_foreign_keys=on",
		HolidayAPIURL:   "https://date.nager.at/api/v3",
		HolidayTimeout:  10 * time.Second,
		HolidayCacheTTL: 12 * time.Hour,
		SuggestionCount: 3,
		LogLevel:        "info",
	}

	invalid := make([]string, 0, 2)

	if dsn := strings.TrimSpace(os.Getenv("EQUITY_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if url := strings.TrimSpace(os.Getenv("EQUITY_HOLIDAY_API_URL")); url != "" {
		cfg.HolidayAPIURL = strings.TrimRight(url, "/")
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("EQUITY_HOLIDAY_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "EQUITY_HOLIDAY_TIMEOUT")
		} else {
			cfg.HolidayTimeout = timeout
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("EQUITY_HOLIDAY_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "EQUITY_HOLIDAY_CACHE_TTL")
		} else {
			cfg.HolidayCacheTTL = ttl
		}
	}

	if countValue := strings.TrimSpace(os.Getenv("EQUITY_SUGGESTION_COUNT")); countValue != "" {
		count, err := strconv.Atoi(countValue)
		if err != nil || count <= 0 || count > 24 {
			invalid = append(invalid, "EQUITY_SUGGESTION_COUNT")
		} else {
			cfg.SuggestionCount = count
		}
	}

	if offlineValue := strings.TrimSpace(os.Getenv("EQUITY_OFFLINE_HOLIDAYS")); offlineValue != "" {
		offline, err := strconv.ParseBool(offlineValue)
		if err != nil {
			invalid = append(invalid, "EQUITY_OFFLINE_HOLIDAYS")
		} else {
			cfg.OfflineHolidays = offline
		}
	}

	if level := strings.TrimSpace(os.Getenv("EQUITY_LOG_LEVEL")); level != "" {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(level)
		default:
			invalid = append(invalid, "EQUITY_LOG_LEVEL")
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
