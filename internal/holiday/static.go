package holiday

import (
	"context"
	"sync"
	"time"

	"github.com/example/meeting-equity/internal/country"
)

// StaticGateway serves holiday lookups from an in-memory table. It backs the
// offline mode of the demo binary and the test suites.
type StaticGateway struct {
	mu       sync.RWMutex
	holidays map[string]string // "2006-01-02/CC" -> holiday name
	err      error
}

// NewStaticGateway constructs an empty static gateway.
func NewStaticGateway() *StaticGateway {
	return &StaticGateway{holidays: make(map[string]string)}
}

// Add registers a holiday for the given local date and country.
func (g *StaticGateway) Add(localDate time.Time, countryCode, name string) {
	g.mu.Lock()
	g.holidays[g.key(localDate, countryCode)] = name
	g.mu.Unlock()
}

// Fail makes every subsequent lookup return the supplied error; passing nil
// restores normal operation. Tests use this to exercise degradation paths.
func (g *StaticGateway) Fail(err error) {
	g.mu.Lock()
	g.err = err
	g.mu.Unlock()
}

// IsHoliday implements Gateway.
func (g *StaticGateway) IsHoliday(_ context.Context, localDate time.Time, countryCode string) (Lookup, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.err != nil {
		return Lookup{}, g.err
	}
	name, ok := g.holidays[g.key(localDate, countryCode)]
	if !ok {
		return Lookup{}, nil
	}
	return Lookup{IsHoliday: true, Name: name}, nil
}

func (g *StaticGateway) key(localDate time.Time, countryCode string) string {
	return DateKey(localDate) + "/" + country.Normalize(countryCode)
}
