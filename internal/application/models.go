package application

import (
	"time"

	"github.com/example/meeting-equity/internal/equity"
	"github.com/example/meeting-equity/internal/workinghours"
)

// Participant represents a persisted meeting participant.
type Participant struct {
	ID        string
	Name      string
	Timezone  string
	Country   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParticipantInput captures caller provided participant fields.
type ParticipantInput struct {
	Name     string
	Timezone string
	Country  string
	Notes    string
}

// Meeting represents a persisted meeting proposal.
type Meeting struct {
	ID              string
	Title           string
	ProposedTime    time.Time
	DurationMinutes int
	Notes           string
	ParticipantIDs  []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MeetingInput captures caller provided meeting fields.
type MeetingInput struct {
	Title           string
	ProposedTime    time.Time
	DurationMinutes int
	Notes           string
	ParticipantIDs  []string
}

// MeetingDuration bounds accepted meeting lengths in minutes. Durations
// outside the range are rejected at create/update, never silently clamped.
const (
	MinMeetingDurationMinutes = 15
	MaxMeetingDurationMinutes = 480
)

// CountryConfig pairs a country code with its working-hours override.
type CountryConfig struct {
	Country   string
	Config    workinghours.Config
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Analysis is the full equity picture for one meeting, served to the
// presentation layer as plain data.
type Analysis struct {
	MeetingID string
	// ProposedTime is the analyzed instant, in UTC.
	ProposedTime time.Time
	// Statuses holds the per-participant classification at the proposed time.
	Statuses []equity.ParticipantStatus
	// Score aggregates the statuses.
	Score equity.ScoreResult
	// Slots is the 24-hour heatmap for the analyzed date.
	Slots []equity.HeatmapSlot
	// Suggestions ranks the best slots of the analyzed date.
	Suggestions []equity.HeatmapSlot
	GeneratedAt time.Time
}
