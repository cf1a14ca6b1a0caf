package workinghours

import (
	"sync"

	"github.com/example/meeting-equity/internal/country"
)

// Resolver maps country codes to working-hours configurations, falling back
// to the immutable default when no override exists. Resolve never fails and
// never validates: overrides are validated when stored.
type Resolver struct {
	mu        sync.RWMutex
	overrides map[string]Config
}

// NewResolver constructs a resolver with the provided initial overrides.
// Keys are normalized to upper case; invalid entries are kept as supplied
// since storage is trusted to have validated them.
func NewResolver(overrides map[string]Config) *Resolver {
	r := &Resolver{overrides: make(map[string]Config, len(overrides))}
	for code, cfg := range overrides {
		r.overrides[country.Normalize(code)] = cfg.Clone()
	}
	return r
}

// Resolve returns the override for the country when present, otherwise the
// default configuration. Unknown or empty country codes yield the default.
func (r *Resolver) Resolve(countryCode string) Config {
	if r == nil {
		return Default()
	}
	r.mu.RLock()
	cfg, ok := r.overrides[country.Normalize(countryCode)]
	r.mu.RUnlock()
	if !ok {
		return Default()
	}
	return cfg.Clone()
}

// Set validates and stores an override for the country.
func (r *Resolver) Set(countryCode string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	r.mu.Lock()
	if r.overrides == nil {
		r.overrides = make(map[string]Config)
	}
	r.overrides[country.Normalize(countryCode)] = cfg.Clone()
	r.mu.Unlock()
	return nil
}

// Delete removes a country override. Affected participants silently revert
// to the default configuration; deleting an absent override is a no-op.
func (r *Resolver) Delete(countryCode string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	delete(r.overrides, country.Normalize(countryCode))
	r.mu.Unlock()
}
