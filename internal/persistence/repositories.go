package persistence

import "context"

// ParticipantRepository exposes CRUD operations for participants.
type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, participant Participant) error
	UpdateParticipant(ctx context.Context, participant Participant) error
	GetParticipant(ctx context.Context, id string) (Participant, error)
	ListParticipants(ctx context.Context) ([]Participant, error)
	DeleteParticipant(ctx context.Context, id string) error
}

// MeetingRepository stores meetings and their ordered participant lists.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting Meeting) error
	UpdateMeeting(ctx context.Context, meeting Meeting) error
	GetMeeting(ctx context.Context, id string) (Meeting, error)
	ListMeetings(ctx context.Context) ([]Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error
}

// WorkingHoursRepository stores per-country working-hours overrides keyed
// by ISO 3166-1 alpha-2 country code.
type WorkingHoursRepository interface {
	UpsertWorkingHours(ctx context.Context, config WorkingHours) error
	GetWorkingHours(ctx context.Context, country string) (WorkingHours, error)
	ListWorkingHours(ctx context.Context) ([]WorkingHours, error)
	DeleteWorkingHours(ctx context.Context, country string) error
}
