// Package workinghours models the per-country working-hours windows used to
// judge how convenient a meeting instant is for a participant.
//
// A configuration describes three bands on a single local day: a green
// (optimal) window, flanked by orange (acceptable) morning and evening
// windows. Every range is half-open [start, end) and must not cross local
// midnight; night-shift style wrap-around bands are intentionally not
// representable.
package workinghours

import (
	"fmt"
	"sort"
	"strings"
)

// Minute is a clock position expressed as minutes since local midnight.
type Minute int

// ParseClock converts an "HH:MM" string into a Minute.
func ParseClock(value string) (Minute, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(value, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("workinghours: invalid clock value %q", value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("workinghours: clock value %q out of range", value)
	}
	return Minute(hours*60 + minutes), nil
}

// MustClock is ParseClock for compile-time constants; it panics on error.
func MustClock(value string) Minute {
	minute, err := ParseClock(value)
	if err != nil {
		panic(err)
	}
	return minute
}

// String renders the minute as "HH:MM".
func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Config captures the working-hours windows and work days for one country.
type Config struct {
	GreenStart         Minute
	GreenEnd           Minute
	OrangeMorningStart Minute
	OrangeMorningEnd   Minute
	OrangeEveningStart Minute
	OrangeEveningEnd   Minute
	// WorkDays uses ISO 8601 weekday numbers: 1=Monday ... 7=Sunday.
	WorkDays map[int]bool
}

// Default returns the global fallback configuration: green 09:00-17:00,
// orange 08:00-09:00 and 17:00-18:00, Monday through Friday.
func Default() Config {
	return Config{
		GreenStart:         MustClock("09:00"),
		GreenEnd:           MustClock("17:00"),
		OrangeMorningStart: MustClock("08:00"),
		OrangeMorningEnd:   MustClock("09:00"),
		OrangeEveningStart: MustClock("17:00"),
		OrangeEveningEnd:   MustClock("18:00"),
		WorkDays:           map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true},
	}
}

// Clone returns a deep copy so shared defaults cannot be mutated by callers.
func (c Config) Clone() Config {
	days := make(map[int]bool, len(c.WorkDays))
	for day, on := range c.WorkDays {
		if on {
			days[day] = true
		}
	}
	out := c
	out.WorkDays = days
	return out
}

// IsWorkDay reports whether the ISO weekday is part of the working week.
func (c Config) IsWorkDay(isoWeekday int) bool {
	return c.WorkDays[isoWeekday]
}

// SortedWorkDays returns the configured work days in ascending ISO order.
func (c Config) SortedWorkDays() []int {
	days := make([]int, 0, len(c.WorkDays))
	for day, on := range c.WorkDays {
		if on {
			days = append(days, day)
		}
	}
	sort.Ints(days)
	return days
}

// ValidationError reports which configuration invariants were violated.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "workinghours: validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "workinghours: invalid config: " + strings.Join(fields, ", ")
}

// HasErrors reports whether any invariant was violated.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// Validate checks every configuration invariant and reports all violations.
//
// Validation runs when a configuration is created or edited, never at
// resolve time: Resolve trusts previously validated storage.
func Validate(cfg Config) error {
	vErr := &ValidationError{}

	if cfg.GreenStart >= cfg.GreenEnd {
		vErr.add("green", "green start must be before green end")
	}
	if cfg.OrangeMorningStart >= cfg.OrangeMorningEnd {
		vErr.add("orange_morning", "orange morning start must be before its end")
	}
	if cfg.OrangeEveningStart >= cfg.OrangeEveningEnd {
		vErr.add("orange_evening", "orange evening start must be before its end")
	}
	if cfg.OrangeMorningEnd > cfg.GreenStart {
		vErr.add("orange_morning_end", "orange morning window must end at or before green start")
	}
	if cfg.OrangeEveningStart < cfg.GreenEnd {
		vErr.add("orange_evening_start", "orange evening window must start at or after green end")
	}

	days := cfg.SortedWorkDays()
	if len(days) == 0 {
		vErr.add("work_days", "at least one work day is required")
	}
	for _, day := range days {
		if day < 1 || day > 7 {
			vErr.add("work_days", fmt.Sprintf("weekday %d outside ISO range 1..7", day))
			break
		}
	}

	if vErr.HasErrors() {
		return vErr
	}
	return nil
}
