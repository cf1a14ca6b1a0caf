package persistence

import "time"

// Participant represents a meeting participant snapshot as stored.
type Participant struct {
	ID        string
	Name      string
	Timezone  string
	Country   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Meeting represents a proposed meeting stored in persistence. The
// participant list preserves caller ordering.
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

// WorkingHours represents a per-country working-hours override. All window
// positions are minutes since local midnight; WorkDays uses ISO weekday
// numbers (1=Monday ... 7=Sunday).
type WorkingHours struct {
	Country            string
	GreenStart         int
	GreenEnd           int
	OrangeMorningStart int
	OrangeMorningEnd   int
	OrangeEveningStart int
	OrangeEveningEnd   int
	WorkDays           []int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
