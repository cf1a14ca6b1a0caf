// Package holiday answers whether a local calendar date is a public holiday
// for a country. The engine consumes this as an external collaborator: every
// implementation failure must be recoverable, so callers degrade a failed
// lookup to "unknown holiday status" instead of aborting classification.
package holiday

import (
	"context"
	"errors"
	"time"
)

// ErrGatewayUnavailable wraps transport or upstream failures. Callers treat
// it as "unknown holiday status" and continue.
var ErrGatewayUnavailable = errors.New("holiday: gateway unavailable")

// Lookup is the answer for one (date, country) pair.
type Lookup struct {
	IsHoliday bool
	// Name is the holiday's display name when IsHoliday is true.
	Name string
}

// Gateway resolves holiday status for a participant-local calendar date.
// Implementations must be safe for concurrent use; heatmap generation issues
// up to 24 x N lookups in parallel.
type Gateway interface {
	IsHoliday(ctx context.Context, localDate time.Time, countryCode string) (Lookup, error)
}

// DateKey renders the calendar date portion used to key holiday data.
func DateKey(localDate time.Time) string {
	return localDate.Format("2006-01-02")
}
