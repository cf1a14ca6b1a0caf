package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/example/meeting-equity/internal/country"
	"github.com/example/meeting-equity/internal/persistence"
	"github.com/example/meeting-equity/internal/workinghours"
)

// CountryConfigRepository captures the persistence interactions needed by the service.
type CountryConfigRepository interface {
	UpsertCountryConfig(ctx context.Context, config CountryConfig) error
	GetCountryConfig(ctx context.Context, countryCode string) (CountryConfig, error)
	ListCountryConfigs(ctx context.Context) ([]CountryConfig, error)
	DeleteCountryConfig(ctx context.Context, countryCode string) error
}

// WorkingHoursService manages per-country working-hours overrides. Writes go
// to persistence and to the in-memory resolver in the same call, so
// classifications pick up changes without a restart.
type WorkingHoursService struct {
	configs  CountryConfigRepository
	resolver *workinghours.Resolver
	now      func() time.Time
	logger   *slog.Logger
}

// NewWorkingHoursService wires dependencies for working-hours operations.
func NewWorkingHoursService(configs CountryConfigRepository, resolver *workinghours.Resolver, now func() time.Time) *WorkingHoursService {
	return NewWorkingHoursServiceWithLogger(configs, resolver, now, nil)
}

// NewWorkingHoursServiceWithLogger additionally attaches a structured logger.
func NewWorkingHoursServiceWithLogger(configs CountryConfigRepository, resolver *workinghours.Resolver, now func() time.Time, logger *slog.Logger) *WorkingHoursService {
	if now == nil {
		now = time.Now
	}
	return &WorkingHoursService{
		configs:  configs,
		resolver: resolver,
		now:      now,
		logger:   defaultLogger(logger),
	}
}

// SetCountryConfig validates and stores an override for one country.
func (s *WorkingHoursService) SetCountryConfig(ctx context.Context, countryCode string, config workinghours.Config) (CountryConfig, error) {
	if s == nil {
		return CountryConfig{}, fmt.Errorf("WorkingHoursService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "working_hours", "set")

	if !country.IsValid(countryCode) {
		vErr := &ValidationError{}
		vErr.add("country", fmt.Sprintf("unknown ISO 3166-1 alpha-2 country code %q", countryCode))
		return CountryConfig{}, vErr
	}
	if err := workinghours.Validate(config); err != nil {
		return CountryConfig{}, mapConfigValidationError(err)
	}

	normalized := country.Normalize(countryCode)
	record := CountryConfig{
		Country:   normalized,
		Config:    config.Clone(),
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}

	if s.configs != nil {
		if err := s.configs.UpsertCountryConfig(ctx, record); err != nil {
			return CountryConfig{}, mapRepoError(err)
		}
	}
	if s.resolver != nil {
		if err := s.resolver.Set(normalized, config); err != nil {
			return CountryConfig{}, mapConfigValidationError(err)
		}
	}

	logger.Info("working hours override stored", "country", normalized)
	return record, nil
}

// GetCountryConfig fetches the stored override for one country.
func (s *WorkingHoursService) GetCountryConfig(ctx context.Context, countryCode string) (CountryConfig, error) {
	if s == nil || s.configs == nil {
		return CountryConfig{}, ErrNotFound
	}
	record, err := s.configs.GetCountryConfig(ctx, country.Normalize(countryCode))
	if err != nil {
		return CountryConfig{}, mapRepoError(err)
	}
	return record, nil
}

// ListCountryConfigs enumerates overrides in country-code order.
func (s *WorkingHoursService) ListCountryConfigs(ctx context.Context) ([]CountryConfig, error) {
	if s == nil || s.configs == nil {
		return nil, nil
	}
	records, err := s.configs.ListCountryConfigs(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	ordered := make([]CountryConfig, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Country < ordered[j].Country
	})
	return ordered, nil
}

// DeleteCountryConfig removes an override so the country falls back to the
// default configuration. Deleting an absent override is not an error.
func (s *WorkingHoursService) DeleteCountryConfig(ctx context.Context, countryCode string) error {
	if s == nil {
		return fmt.Errorf("WorkingHoursService is nil")
	}
	normalized := country.Normalize(countryCode)

	if s.configs != nil {
		if err := s.configs.DeleteCountryConfig(ctx, normalized); err != nil && !errors.Is(err, persistence.ErrNotFound) {
			return mapRepoError(err)
		}
	}
	if s.resolver != nil {
		s.resolver.Delete(normalized)
	}
	return nil
}

// LoadResolver seeds the in-memory resolver from persisted overrides. Called
// once at startup after opening the store.
func (s *WorkingHoursService) LoadResolver(ctx context.Context) error {
	if s == nil || s.configs == nil || s.resolver == nil {
		return nil
	}
	records, err := s.configs.ListCountryConfigs(ctx)
	if err != nil {
		return mapRepoError(err)
	}
	for _, record := range records {
		if err := s.resolver.Set(record.Country, record.Config); err != nil {
			return fmt.Errorf("load working hours for %s: %w", record.Country, err)
		}
	}
	return nil
}

func mapConfigValidationError(err error) error {
	if err == nil {
		return nil
	}
	var whErr *workinghours.ValidationError
	if errors.As(err, &whErr) {
		vErr := &ValidationError{}
		for field, msg := range whErr.FieldErrors {
			vErr.add(field, msg)
		}
		return vErr
	}
	return err
}
