package config

import (
	"os"
	"testing"
	"time"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"EQUITY_SQLITE_DSN",
			"EQUITY_HOLIDAY_API_URL",
			"EQUITY_HOLIDAY_TIMEOUT",
			"EQUITY_HOLIDAY_CACHE_TTL",
			"EQUITY_SUGGESTION_COUNT",
			"EQUITY_OFFLINE_HOLIDAYS",
			"EQUITY_LOG_LEVEL",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.SQLiteDSN != "file:equity.db?_foreign_keys=on" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.HolidayAPIURL != "https://date.nager.at/api/v3" {
			t.Fatalf("unexpected default holiday API URL: %q", cfg.HolidayAPIURL)
		}
		if cfg.HolidayCacheTTL != 12*time.Hour {
			t.Fatalf("expected default cache TTL 12h, got %s", cfg.HolidayCacheTTL)
		}
		if cfg.SuggestionCount != 3 {
			t.Fatalf("expected default suggestion count 3, got %d", cfg.SuggestionCount)
		}
		if cfg.OfflineHolidays {
			t.Fatalf("expected online holidays by default")
		}
		if cfg.LogLevel != "info" {
			t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
		}
	})

	t.Run("parses duration and numeric fields", func(t *testing.T) {
		t.Setenv("EQUITY_SQLITE_DSN", "file:/tmp/equity.db")
		t.Setenv("EQUITY_HOLIDAY_API_URL", "https://holidays.example.com/api/")
		t.Setenv("EQUITY_HOLIDAY_TIMEOUT", "5s")
		t.Setenv("EQUITY_HOLIDAY_CACHE_TTL", "1h")
		t.Setenv("EQUITY_SUGGESTION_COUNT", "5")
		t.Setenv("EQUITY_OFFLINE_HOLIDAYS", "true")
		t.Setenv("EQUITY_LOG_LEVEL", "DEBUG")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.SQLiteDSN != "file:/tmp/equity.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.HolidayAPIURL != "https://holidays.example.com/api" {
			t.Fatalf("expected trailing slash trimmed, got %q", cfg.HolidayAPIURL)
		}
		if cfg.HolidayTimeout != 5*time.Second {
			t.Fatalf("expected holiday timeout 5s, got %s", cfg.HolidayTimeout)
		}
		if cfg.HolidayCacheTTL != time.Hour {
			t.Fatalf("expected cache TTL 1h, got %s", cfg.HolidayCacheTTL)
		}
		if cfg.SuggestionCount != 5 {
			t.Fatalf("expected suggestion count 5, got %d", cfg.SuggestionCount)
		}
		if !cfg.OfflineHolidays {
			t.Fatalf("expected offline holidays enabled")
		}
		if cfg.LogLevel != "debug" {
			t.Fatalf("expected log level lowered to debug, got %q", cfg.LogLevel)
		}
	})

	t.Run("rejects malformed values together", func(t *testing.T) {
		t.Setenv("EQUITY_HOLIDAY_TIMEOUT", "soon")
		t.Setenv("EQUITY_SUGGESTION_COUNT", "25")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for malformed values")
		}
		expected := "invalid environment values: EQUITY_HOLIDAY_TIMEOUT, EQUITY_SUGGESTION_COUNT"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})
}
