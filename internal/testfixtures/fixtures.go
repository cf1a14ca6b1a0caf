package testfixtures

import (
	"time"

	"github.com/example/meeting-equity/internal/application"
	"github.com/example/meeting-equity/internal/equity"
	"github.com/example/meeting-equity/internal/persistence"
	"github.com/example/meeting-equity/internal/workinghours"
)

// ReferenceTime returns the canonical baseline timestamp used by fixtures:
// Wednesday 2025-01-15 14:00 UTC, which is 09:00 in New York and 15:00 in
// Berlin.
func ReferenceTime() time.Time {
	return time.Date(2025, time.January, 15, 14, 0, 0, 0, time.UTC)
}

// ------------------------- Participant fixtures -------------------------

// ParticipantFixture represents a deterministic participant record that can
// be materialised for application, persistence, or classification tests.
type ParticipantFixture struct {
	ID        string
	Name      string
	Timezone  string
	Country   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParticipantOption mutates a ParticipantFixture during construction.
type ParticipantOption func(*ParticipantFixture)

// NewParticipantFixture builds a participant in New York with sane defaults.
func NewParticipantFixture(opts ...ParticipantOption) ParticipantFixture {
	fixture := ParticipantFixture{
		ID:        "participant-1",
		Name:      "Ada Lovelace",
		Timezone:  "America/New_York",
		Country:   "US",
		CreatedAt: ReferenceTime(),
		UpdatedAt: ReferenceTime(),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithParticipantID overrides the identifier.
func WithParticipantID(id string) ParticipantOption {
	return func(f *ParticipantFixture) {
		f.ID = id
	}
}

// WithParticipantName overrides the display name.
func WithParticipantName(name string) ParticipantOption {
	return func(f *ParticipantFixture) {
		f.Name = name
	}
}

// WithParticipantZone overrides the time zone and country together, which is
// how real participants vary.
func WithParticipantZone(tz, country string) ParticipantOption {
	return func(f *ParticipantFixture) {
		f.Timezone = tz
		f.Country = country
	}
}

// WithParticipantNotes overrides the free-form notes.
func WithParticipantNotes(notes string) ParticipantOption {
	return func(f *ParticipantFixture) {
		f.Notes = notes
	}
}

// Application converts the fixture into the application layer model.
func (f ParticipantFixture) Application() application.Participant {
	return application.Participant{
		ID:        f.ID,
		Name:      f.Name,
		Timezone:  f.Timezone,
		Country:   f.Country,
		Notes:     f.Notes,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Persistence converts the fixture into the storage model.
func (f ParticipantFixture) Persistence() persistence.Participant {
	return persistence.Participant{
		ID:        f.ID,
		Name:      f.Name,
		Timezone:  f.Timezone,
		Country:   f.Country,
		Notes:     f.Notes,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Equity converts the fixture into the classification model.
func (f ParticipantFixture) Equity() equity.Participant {
	return equity.Participant{
		ID:       f.ID,
		Name:     f.Name,
		Timezone: f.Timezone,
		Country:  f.Country,
		Notes:    f.Notes,
	}
}

// Input converts the fixture into a create/update request payload.
func (f ParticipantFixture) Input() application.ParticipantInput {
	return application.ParticipantInput{
		Name:     f.Name,
		Timezone: f.Timezone,
		Country:  f.Country,
		Notes:    f.Notes,
	}
}

// --------------------------- Meeting fixtures ---------------------------

// MeetingFixture represents a deterministic meeting record.
type MeetingFixture struct {
	ID              string
	Title           string
	ProposedTime    time.Time
	DurationMinutes int
	Notes           string
	ParticipantIDs  []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MeetingOption mutates a MeetingFixture during construction.
type MeetingOption func(*MeetingFixture)

// NewMeetingFixture builds a one-hour meeting at the reference time.
func NewMeetingFixture(opts ...MeetingOption) MeetingFixture {
	fixture := MeetingFixture{
		ID:              "meeting-1",
		Title:           "Quarterly sync",
		ProposedTime:    ReferenceTime(),
		DurationMinutes: 60,
		ParticipantIDs:  []string{"participant-1"},
		CreatedAt:       ReferenceTime(),
		UpdatedAt:       ReferenceTime(),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithMeetingID overrides the identifier.
func WithMeetingID(id string) MeetingOption {
	return func(f *MeetingFixture) {
		f.ID = id
	}
}

// WithMeetingTitle overrides the title.
func WithMeetingTitle(title string) MeetingOption {
	return func(f *MeetingFixture) {
		f.Title = title
	}
}

// WithMeetingProposedTime overrides the analyzed instant.
func WithMeetingProposedTime(t time.Time) MeetingOption {
	return func(f *MeetingFixture) {
		f.ProposedTime = t
	}
}

// WithMeetingDuration overrides the duration in minutes.
func WithMeetingDuration(minutes int) MeetingOption {
	return func(f *MeetingFixture) {
		f.DurationMinutes = minutes
	}
}

// WithMeetingParticipants replaces the ordered participant list.
func WithMeetingParticipants(ids ...string) MeetingOption {
	return func(f *MeetingFixture) {
		f.ParticipantIDs = append([]string(nil), ids...)
	}
}

// Application converts the fixture into the application layer model.
func (f MeetingFixture) Application() application.Meeting {
	return application.Meeting{
		ID:              f.ID,
		Title:           f.Title,
		ProposedTime:    f.ProposedTime,
		DurationMinutes: f.DurationMinutes,
		Notes:           f.Notes,
		ParticipantIDs:  append([]string(nil), f.ParticipantIDs...),
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// Persistence converts the fixture into the storage model.
func (f MeetingFixture) Persistence() persistence.Meeting {
	return persistence.Meeting{
		ID:              f.ID,
		Title:           f.Title,
		ProposedTime:    f.ProposedTime,
		DurationMinutes: f.DurationMinutes,
		Notes:           f.Notes,
		ParticipantIDs:  append([]string(nil), f.ParticipantIDs...),
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// Input converts the fixture into a create/update request payload.
func (f MeetingFixture) Input() application.MeetingInput {
	return application.MeetingInput{
		Title:           f.Title,
		ProposedTime:    f.ProposedTime,
		DurationMinutes: f.DurationMinutes,
		Notes:           f.Notes,
		ParticipantIDs:  append([]string(nil), f.ParticipantIDs...),
	}
}

// ------------------------ Country config fixtures ------------------------

// CountryConfigFixture represents a deterministic working-hours override.
type CountryConfigFixture struct {
	Country   string
	Config    workinghours.Config
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountryConfigOption mutates a CountryConfigFixture during construction.
type CountryConfigOption func(*CountryConfigFixture)

// NewCountryConfigFixture builds a German 08:00-16:00 override.
func NewCountryConfigFixture(opts ...CountryConfigOption) CountryConfigFixture {
	cfg := workinghours.Default()
	cfg.GreenStart = workinghours.MustClock("08:00")
	cfg.GreenEnd = workinghours.MustClock("16:00")
	cfg.OrangeMorningStart = workinghours.MustClock("07:00")
	cfg.OrangeMorningEnd = workinghours.MustClock("08:00")
	cfg.OrangeEveningStart = workinghours.MustClock("16:00")
	cfg.OrangeEveningEnd = workinghours.MustClock("17:00")

	fixture := CountryConfigFixture{
		Country:   "DE",
		Config:    cfg,
		CreatedAt: ReferenceTime(),
		UpdatedAt: ReferenceTime(),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithConfigCountry overrides the country code.
func WithConfigCountry(country string) CountryConfigOption {
	return func(f *CountryConfigFixture) {
		f.Country = country
	}
}

// WithConfig replaces the working-hours configuration.
func WithConfig(cfg workinghours.Config) CountryConfigOption {
	return func(f *CountryConfigFixture) {
		f.Config = cfg.Clone()
	}
}

// Application converts the fixture into the application layer model.
func (f CountryConfigFixture) Application() application.CountryConfig {
	return application.CountryConfig{
		Country:   f.Country,
		Config:    f.Config.Clone(),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Persistence converts the fixture into the storage model.
func (f CountryConfigFixture) Persistence() persistence.WorkingHours {
	return persistence.WorkingHours{
		Country:            f.Country,
		GreenStart:         int(f.Config.GreenStart),
		GreenEnd:           int(f.Config.GreenEnd),
		OrangeMorningStart: int(f.Config.OrangeMorningStart),
		OrangeMorningEnd:   int(f.Config.OrangeMorningEnd),
		OrangeEveningStart: int(f.Config.OrangeEveningStart),
		OrangeEveningEnd:   int(f.Config.OrangeEveningEnd),
		WorkDays:           f.Config.SortedWorkDays(),
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}
