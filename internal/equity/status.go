// Package equity implements the meeting-equity engine: it classifies how
// convenient a proposed meeting instant is for each participant, aggregates
// the classifications into a 0-100 fairness score, and searches a 24-hour
// window for better instants.
package equity

import "time"

// Status is the ordinal convenience classification for one participant at
// one instant, from optimal to effectively impossible.
type Status int

const (
	// StatusGreen marks an instant inside the participant's optimal window.
	StatusGreen Status = iota
	// StatusOrange marks an acceptable but suboptimal instant.
	StatusOrange
	// StatusRed marks an instant outside working hours on a working day.
	StatusRed
	// StatusCritical marks a non-working day, holiday, or unresolvable
	// participant.
	StatusCritical
)

// String returns the lower-case display name of the status.
func (s Status) String() string {
	switch s {
	case StatusGreen:
		return "green"
	case StatusOrange:
		return "orange"
	case StatusRed:
		return "red"
	case StatusCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Weight returns the score contribution of the status. A fully green
// meeting scores 100; an all-red meeting scores 20 ("technically possible
// but bad for everyone"); a single critical participant pulls the mean
// down hard.
func (s Status) Weight() float64 {
	switch s {
	case StatusGreen:
		return 100
	case StatusOrange:
		return 60
	case StatusRed:
		return 20
	default:
		return 0
	}
}

// Participant is the classification input. Classification is a pure
// function of participant, instant, configuration, and holiday data; the
// participant itself is never mutated.
type Participant struct {
	ID       string
	Name     string
	Timezone string
	Country  string
	Notes    string
}

// ParticipantStatus is the transient classification result for one
// participant at one instant.
type ParticipantStatus struct {
	ParticipantID string
	Status        Status
	// LocalTime is the instant in the participant's zone. Zero when the
	// participant's time zone could not be resolved.
	LocalTime time.Time
	// UTCOffset is the signed "UTC±HH:MM" label for display.
	UTCOffset string
	// Reason explains non-green classifications in human-readable form.
	Reason string
	// IsCritical mirrors Status == StatusCritical.
	IsCritical bool
}
