package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/meeting-equity/internal/persistence"
	"github.com/example/meeting-equity/internal/scheduler"
)

// ConflictWarning reports a participant double-booked across two meetings.
// Warnings are advisory: the engine stores the meeting regardless.
type ConflictWarning struct {
	MeetingID     string
	ParticipantID string
}

// MeetingRepository captures the persistence interactions needed by the service.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting Meeting) (Meeting, error)
	GetMeeting(ctx context.Context, id string) (Meeting, error)
	UpdateMeeting(ctx context.Context, meeting Meeting) (Meeting, error)
	ListMeetings(ctx context.Context) ([]Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error
}

// ParticipantDirectory exposes participant lookup operations.
type ParticipantDirectory interface {
	MissingParticipantIDs(ctx context.Context, ids []string) ([]string, error)
}

// MeetingService orchestrates validation and persistence for meeting operations.
type MeetingService struct {
	meetings     MeetingRepository
	participants ParticipantDirectory
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewMeetingService wires dependencies for meeting operations.
func NewMeetingService(meetings MeetingRepository, participants ParticipantDirectory, idGenerator func() string, now func() time.Time) *MeetingService {
	return NewMeetingServiceWithLogger(meetings, participants, idGenerator, now, nil)
}

// NewMeetingServiceWithLogger additionally attaches a structured logger.
func NewMeetingServiceWithLogger(meetings MeetingRepository, participants ParticipantDirectory, idGenerator func() string, now func() time.Time, logger *slog.Logger) *MeetingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &MeetingService{
		meetings:     meetings,
		participants: participants,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

// CreateMeeting validates the request before delegating to persistence.
func (s *MeetingService) CreateMeeting(ctx context.Context, input MeetingInput) (Meeting, error) {
	if s == nil {
		return Meeting{}, fmt.Errorf("MeetingService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "meetings", "create")

	vErr := &ValidationError{}
	validateMeetingCore(input, vErr)
	if vErr.HasErrors() {
		logger.Info("meeting rejected", "kind", ErrorKind(vErr))
		return Meeting{}, vErr
	}

	participantIDs := uniqueStrings(input.ParticipantIDs)
	if err := s.ensureParticipantsExist(ctx, participantIDs); err != nil {
		return Meeting{}, err
	}

	createdAt := s.now()
	meeting := Meeting{
		ID:              s.idGenerator(),
		Title:           strings.TrimSpace(input.Title),
		ProposedTime:    input.ProposedTime.UTC(),
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
		ParticipantIDs:  participantIDs,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}

	if s.meetings == nil {
		return meeting, nil
	}

	persisted, err := s.meetings.CreateMeeting(ctx, meeting)
	if err != nil {
		return Meeting{}, mapMeetingRepoError(err)
	}
	logger.Info("meeting created", "meeting_id", persisted.ID, "participants", len(persisted.ParticipantIDs))
	return persisted, nil
}

// UpdateMeeting applies validation before updating persistence state.
func (s *MeetingService) UpdateMeeting(ctx context.Context, id string, input MeetingInput) (Meeting, error) {
	if s == nil {
		return Meeting{}, fmt.Errorf("MeetingService is nil")
	}
	if s.meetings == nil {
		return Meeting{}, fmt.Errorf("meeting repository not configured")
	}

	existing, err := s.meetings.GetMeeting(ctx, id)
	if err != nil {
		return Meeting{}, mapMeetingRepoError(err)
	}

	vErr := &ValidationError{}
	validateMeetingCore(input, vErr)
	if vErr.HasErrors() {
		return Meeting{}, vErr
	}

	participantIDs := uniqueStrings(input.ParticipantIDs)
	if err := s.ensureParticipantsExist(ctx, participantIDs); err != nil {
		return Meeting{}, err
	}

	updated := existing
	updated.Title = strings.TrimSpace(input.Title)
	updated.ProposedTime = input.ProposedTime.UTC()
	updated.DurationMinutes = input.DurationMinutes
	updated.Notes = input.Notes
	updated.ParticipantIDs = participantIDs
	updated.UpdatedAt = s.now()

	persisted, err := s.meetings.UpdateMeeting(ctx, updated)
	if err != nil {
		return Meeting{}, mapMeetingRepoError(err)
	}
	return persisted, nil
}

// GetMeeting fetches one meeting by identifier.
func (s *MeetingService) GetMeeting(ctx context.Context, id string) (Meeting, error) {
	if s == nil || s.meetings == nil {
		return Meeting{}, ErrNotFound
	}
	meeting, err := s.meetings.GetMeeting(ctx, id)
	if err != nil {
		return Meeting{}, mapMeetingRepoError(err)
	}
	return meeting, nil
}

// ListMeetings enumerates meetings ordered by proposed time.
func (s *MeetingService) ListMeetings(ctx context.Context) ([]Meeting, error) {
	if s == nil || s.meetings == nil {
		return nil, nil
	}
	meetings, err := s.meetings.ListMeetings(ctx)
	if err != nil {
		return nil, mapMeetingRepoError(err)
	}
	ordered := make([]Meeting, len(meetings))
	copy(ordered, meetings)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ProposedTime.Equal(ordered[j].ProposedTime) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].ProposedTime.Before(ordered[j].ProposedTime)
	})
	return ordered, nil
}

// DeleteMeeting removes a meeting by identifier.
func (s *MeetingService) DeleteMeeting(ctx context.Context, id string) error {
	if s == nil || s.meetings == nil {
		return ErrNotFound
	}
	if err := s.meetings.DeleteMeeting(ctx, id); err != nil {
		return mapMeetingRepoError(err)
	}
	return nil
}

// ConflictWarnings reports participant double-bookings between the meeting
// and every other stored meeting.
func (s *MeetingService) ConflictWarnings(ctx context.Context, meeting Meeting) ([]ConflictWarning, error) {
	if s == nil || s.meetings == nil {
		return nil, nil
	}
	meetings, err := s.meetings.ListMeetings(ctx)
	if err != nil {
		return nil, mapMeetingRepoError(err)
	}

	existing := make([]scheduler.Meeting, 0, len(meetings))
	for _, m := range meetings {
		existing = append(existing, toSchedulerMeeting(m))
	}

	conflicts := scheduler.DetectConflicts(existing, toSchedulerMeeting(meeting))
	if len(conflicts) == 0 {
		return nil, nil
	}
	warnings := make([]ConflictWarning, 0, len(conflicts))
	for _, conflict := range conflicts {
		warnings = append(warnings, ConflictWarning{
			MeetingID:     conflict.WithMeetingID,
			ParticipantID: conflict.Participant,
		})
	}
	return warnings, nil
}

func toSchedulerMeeting(meeting Meeting) scheduler.Meeting {
	participants := make([]string, len(meeting.ParticipantIDs))
	copy(participants, meeting.ParticipantIDs)

	return scheduler.Meeting{
		ID:           meeting.ID,
		Participants: participants,
		Start:        meeting.ProposedTime,
		End:          meeting.ProposedTime.Add(time.Duration(meeting.DurationMinutes) * time.Minute),
	}
}

func (s *MeetingService) ensureParticipantsExist(ctx context.Context, ids []string) error {
	if s.participants == nil {
		return nil
	}
	missing, err := s.participants.MissingParticipantIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}
	vErr := &ValidationError{}
	vErr.add("participants", fmt.Sprintf("unknown participant ids: %s", strings.Join(missing, ", ")))
	return vErr
}

func validateMeetingCore(input MeetingInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}

	if input.ProposedTime.IsZero() {
		vErr.add("proposed_time", "proposed time is required")
	}

	if input.DurationMinutes < MinMeetingDurationMinutes || input.DurationMinutes > MaxMeetingDurationMinutes {
		vErr.add("duration_minutes", fmt.Sprintf("duration must be between %d and %d minutes", MinMeetingDurationMinutes, MaxMeetingDurationMinutes))
	}

	if len(uniqueStrings(input.ParticipantIDs)) == 0 {
		vErr.add("participants", "at least one participant is required")
	}
}

// uniqueStrings drops empties and duplicates while preserving first-seen order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}

func mapMeetingRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("duration_minutes", fmt.Sprintf("duration must be between %d and %d minutes", MinMeetingDurationMinutes, MaxMeetingDurationMinutes))
		return vErr
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		vErr := &ValidationError{}
		vErr.add("participants", "related records are missing")
		return vErr
	}
	return err
}
