// Package timezone converts UTC instants into participant-local wall-clock
// time using the IANA time zone database. DST transitions, historical offset
// changes, and fractional-hour offsets (UTC+5:30, UTC+9:30) all resolve
// through the platform tzdata rather than hand-rolled offset tables.
package timezone

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrInvalidTimeZone indicates the supplied identifier does not resolve
// against the IANA time zone database.
var ErrInvalidTimeZone = errors.New("timezone: invalid time zone")

// LocalTime is the localized view of a single UTC instant.
type LocalTime struct {
	// Time is the instant expressed in the participant's location.
	Time time.Time
	// ISOWeekday follows ISO 8601 numbering: 1=Monday ... 7=Sunday.
	ISOWeekday int
	// MinuteOfDay is minutes elapsed since local midnight, 0..1439.
	MinuteOfDay int
	// OffsetSeconds is the UTC offset in effect at the instant.
	OffsetSeconds int
}

// locations caches resolved *time.Location values. Heatmap generation
// converts the same handful of zones hundreds of times per analysis.
var locations sync.Map // zone name -> *time.Location

func loadLocation(zone string) (*time.Location, error) {
	if strings.TrimSpace(zone) == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidTimeZone)
	}
	if cached, ok := locations.Load(zone); ok {
		return cached.(*time.Location), nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, zone)
	}
	locations.Store(zone, loc)
	return loc, nil
}

// Validate reports whether zone resolves against the IANA database.
func Validate(zone string) error {
	_, err := loadLocation(zone)
	return err
}

// Convert localizes a UTC instant into the given IANA zone.
func Convert(instant time.Time, zone string) (LocalTime, error) {
	loc, err := loadLocation(zone)
	if err != nil {
		return LocalTime{}, err
	}

	local := instant.In(loc)
	_, offset := local.Zone()

	weekday := int(local.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	return LocalTime{
		Time:          local,
		ISOWeekday:    weekday,
		MinuteOfDay:   local.Hour()*60 + local.Minute(),
		OffsetSeconds: offset,
	}, nil
}

// OffsetLabel renders the UTC offset in effect at the instant as a signed
// "UTC±HH:MM" display label.
func OffsetLabel(instant time.Time, zone string) (string, error) {
	converted, err := Convert(instant, zone)
	if err != nil {
		return "", err
	}
	return FormatOffset(converted.OffsetSeconds), nil
}

// FormatOffset renders an offset in seconds as "UTC±HH:MM".
func FormatOffset(offsetSeconds int) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	hours := offsetSeconds / 3600
	minutes := (offsetSeconds % 3600) / 60
	return fmt.Sprintf("UTC%s%02d:%02d", sign, hours, minutes)
}
