package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/meeting-equity/internal/country"
	"github.com/example/meeting-equity/internal/persistence"
)

// UpsertWorkingHours stores or replaces the override for a country.
func (s *Store) UpsertWorkingHours(ctx context.Context, config persistence.WorkingHours) error {
	now := time.Now().UTC()
	if config.CreatedAt.IsZero() {
		config.CreatedAt = now
	}
	config.UpdatedAt = now

	const query = `
		INSERT INTO working_hours (country, green_start, green_end,
			orange_morning_start, orange_morning_end,
			orange_evening_start, orange_evening_end,
			work_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(country) DO UPDATE SET
			green_start = excluded.green_start,
			green_end = excluded.green_end,
			orange_morning_start = excluded.orange_morning_start,
			orange_morning_end = excluded.orange_morning_end,
			orange_evening_start = excluded.orange_evening_start,
			orange_evening_end = excluded.orange_evening_end,
			work_days = excluded.work_days,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		country.Normalize(config.Country),
		config.GreenStart, config.GreenEnd,
		config.OrangeMorningStart, config.OrangeMorningEnd,
		config.OrangeEveningStart, config.OrangeEveningEnd,
		encodeWorkDays(config.WorkDays),
		config.CreatedAt, config.UpdatedAt)
	return mapError(err)
}

// GetWorkingHours fetches the override for a country.
func (s *Store) GetWorkingHours(ctx context.Context, countryCode string) (persistence.WorkingHours, error) {
	const query = `
		SELECT country, green_start, green_end,
			orange_morning_start, orange_morning_end,
			orange_evening_start, orange_evening_end,
			work_days, created_at, updated_at
		FROM working_hours WHERE country = ?
	`
	var config persistence.WorkingHours
	var workDays string
	err := s.db.QueryRowContext(ctx, query, country.Normalize(countryCode)).Scan(
		&config.Country, &config.GreenStart, &config.GreenEnd,
		&config.OrangeMorningStart, &config.OrangeMorningEnd,
		&config.OrangeEveningStart, &config.OrangeEveningEnd,
		&workDays, &config.CreatedAt, &config.UpdatedAt)
	if err != nil {
		return persistence.WorkingHours{}, mapError(err)
	}
	config.WorkDays, err = decodeWorkDays(workDays)
	if err != nil {
		return persistence.WorkingHours{}, err
	}
	return config, nil
}

// ListWorkingHours returns every stored override ordered by country code.
func (s *Store) ListWorkingHours(ctx context.Context) ([]persistence.WorkingHours, error) {
	const query = `
		SELECT country, green_start, green_end,
			orange_morning_start, orange_morning_end,
			orange_evening_start, orange_evening_end,
			work_days, created_at, updated_at
		FROM working_hours ORDER BY country
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var configs []persistence.WorkingHours
	for rows.Next() {
		var config persistence.WorkingHours
		var workDays string
		if err := rows.Scan(
			&config.Country, &config.GreenStart, &config.GreenEnd,
			&config.OrangeMorningStart, &config.OrangeMorningEnd,
			&config.OrangeEveningStart, &config.OrangeEveningEnd,
			&workDays, &config.CreatedAt, &config.UpdatedAt); err != nil {
			return nil, err
		}
		config.WorkDays, err = decodeWorkDays(workDays)
		if err != nil {
			return nil, err
		}
		configs = append(configs, config)
	}
	return configs, rows.Err()
}

// DeleteWorkingHours removes the override for a country. Deleting an absent
// override is a no-op so affected participants silently fall back to the
// default configuration.
func (s *Store) DeleteWorkingHours(ctx context.Context, countryCode string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM working_hours WHERE country = ?`, country.Normalize(countryCode))
	return mapError(err)
}

func encodeWorkDays(days []int) string {
	parts := make([]string, 0, len(days))
	for _, day := range days {
		parts = append(parts, strconv.Itoa(day))
	}
	return strings.Join(parts, ",")
}

func decodeWorkDays(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("decoding work days %q: %w", value, err)
		}
		days = append(days, day)
	}
	return days, nil
}

var _ persistence.WorkingHoursRepository = (*Store)(nil)
