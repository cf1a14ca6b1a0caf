package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/meeting-equity/internal/persistence"
)

type meetingRepoStub struct {
	meeting Meeting
	created Meeting
	updated Meeting
	err     error
	list    []Meeting
}

func (s *meetingRepoStub) CreateMeeting(ctx context.Context, meeting Meeting) (Meeting, error) {
	if s.err != nil {
		return Meeting{}, s.err
	}
	s.created = meeting
	return meeting, nil
}

func (s *meetingRepoStub) GetMeeting(ctx context.Context, id string) (Meeting, error) {
	if s.err != nil {
		return Meeting{}, s.err
	}
	if s.meeting.ID == "" {
		return Meeting{}, ErrNotFound
	}
	return s.meeting, nil
}

func (s *meetingRepoStub) UpdateMeeting(ctx context.Context, meeting Meeting) (Meeting, error) {
	if s.err != nil {
		return Meeting{}, s.err
	}
	s.updated = meeting
	return meeting, nil
}

func (s *meetingRepoStub) ListMeetings(ctx context.Context) ([]Meeting, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]Meeting, len(s.list))
	copy(out, s.list)
	return out, nil
}

func (s *meetingRepoStub) DeleteMeeting(ctx context.Context, id string) error {
	return s.err
}

type participantDirectoryStub struct {
	missing []string
	err     error
}

func (d *participantDirectoryStub) MissingParticipantIDs(ctx context.Context, ids []string) ([]string, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.missing, nil
}

func validMeetingInput() MeetingInput {
	return MeetingInput{
		Title:           "Quarterly sync",
		ProposedTime:    time.Date(2025, time.January, 15, 14, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		ParticipantIDs:  []string{"p1", "p2"},
	}
}

func TestMeetingService_CreateMeeting_ValidatesRequiredFields(t *testing.T) {
	t.Parallel()

	svc := NewMeetingService(&meetingRepoStub{}, &participantDirectoryStub{}, nil, fixedNow(t))

	_, err := svc.CreateMeeting(context.Background(), MeetingInput{DurationMinutes: 60})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"title", "proposed_time", "participants"} {
		if _, ok := vErr.FieldErrors[field]; !ok {
			t.Errorf("expected %s validation error, got %v", field, vErr.FieldErrors)
		}
	}
}

func TestMeetingService_CreateMeeting_ValidatesDurationBounds(t *testing.T) {
	t.Parallel()

	svc := NewMeetingService(&meetingRepoStub{}, &participantDirectoryStub{}, nil, fixedNow(t))

	for _, duration := range []int{0, 14, 481} {
		input := validMeetingInput()
		input.DurationMinutes = duration

		_, err := svc.CreateMeeting(context.Background(), input)

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("duration %d: expected ValidationError, got %v", duration, err)
		}
		if _, ok := vErr.FieldErrors["duration_minutes"]; !ok {
			t.Errorf("duration %d: expected duration_minutes error, got %v", duration, vErr.FieldErrors)
		}
	}

	for _, duration := range []int{MinMeetingDurationMinutes, 60, MaxMeetingDurationMinutes} {
		input := validMeetingInput()
		input.DurationMinutes = duration
		if _, err := svc.CreateMeeting(context.Background(), input); err != nil {
			t.Errorf("duration %d: unexpected error %v", duration, err)
		}
	}
}

func TestMeetingService_CreateMeeting_RejectsUnknownParticipants(t *testing.T) {
	t.Parallel()

	directory := &participantDirectoryStub{missing: []string{"ghost"}}
	svc := NewMeetingService(&meetingRepoStub{}, directory, nil, fixedNow(t))

	_, err := svc.CreateMeeting(context.Background(), validMeetingInput())

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.FieldErrors["participants"]; !ok {
		t.Errorf("expected participants error, got %v", vErr.FieldErrors)
	}
}

func TestMeetingService_CreateMeeting_NormalizesToUTCAndDeduplicates(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	repo := &meetingRepoStub{}
	svc := NewMeetingService(repo, &participantDirectoryStub{}, func() string { return "meeting-1" }, fixedNow(t))

	input := validMeetingInput()
	input.ProposedTime = time.Date(2025, time.January, 15, 23, 0, 0, 0, loc)
	input.ParticipantIDs = []string{"p2", "p1", "p2", ""}

	created, err := svc.CreateMeeting(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateMeeting returned error: %v", err)
	}

	if created.ProposedTime.Location() != time.UTC {
		t.Errorf("ProposedTime location = %v, want UTC", created.ProposedTime.Location())
	}
	if created.ProposedTime.Hour() != 14 {
		t.Errorf("ProposedTime hour = %d, want 14 (23:00 JST)", created.ProposedTime.Hour())
	}
	want := []string{"p2", "p1"}
	if len(created.ParticipantIDs) != 2 || created.ParticipantIDs[0] != want[0] || created.ParticipantIDs[1] != want[1] {
		t.Errorf("ParticipantIDs = %v, want %v (order preserved, duplicates dropped)", created.ParticipantIDs, want)
	}
}

func TestMeetingService_UpdateMeeting_PropagatesNotFound(t *testing.T) {
	t.Parallel()

	svc := NewMeetingService(&meetingRepoStub{}, &participantDirectoryStub{}, nil, fixedNow(t))

	_, err := svc.UpdateMeeting(context.Background(), "ghost", validMeetingInput())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestMeetingService_CreateMeeting_MapsConstraintViolations(t *testing.T) {
	t.Parallel()

	repo := &meetingRepoStub{err: persistence.ErrConstraintViolation}
	svc := NewMeetingService(repo, &participantDirectoryStub{}, nil, fixedNow(t))

	_, err := svc.CreateMeeting(context.Background(), validMeetingInput())

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.FieldErrors["duration_minutes"]; !ok {
		t.Errorf("expected duration_minutes error, got %v", vErr.FieldErrors)
	}
}

func TestMeetingService_ConflictWarnings_ReportsDoubleBookings(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, time.January, 15, 14, 0, 0, 0, time.UTC)
	repo := &meetingRepoStub{list: []Meeting{
		{ID: "m1", ProposedTime: at, DurationMinutes: 60, ParticipantIDs: []string{"p1", "p2"}},
		{ID: "m2", ProposedTime: at.Add(2 * time.Hour), DurationMinutes: 60, ParticipantIDs: []string{"p1"}},
	}}
	svc := NewMeetingService(repo, &participantDirectoryStub{}, nil, fixedNow(t))

	candidate := Meeting{
		ID:              "m3",
		ProposedTime:    at.Add(30 * time.Minute),
		DurationMinutes: 60,
		ParticipantIDs:  []string{"p1"},
	}

	warnings, err := svc.ConflictWarnings(context.Background(), candidate)
	if err != nil {
		t.Fatalf("ConflictWarnings returned error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %+v, want one", warnings)
	}
	if warnings[0].MeetingID != "m1" || warnings[0].ParticipantID != "p1" {
		t.Errorf("warning = %+v", warnings[0])
	}
}

func TestMeetingService_ListMeetings_SortsByProposedTime(t *testing.T) {
	t.Parallel()

	early := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	late := time.Date(2025, time.January, 15, 17, 0, 0, 0, time.UTC)
	repo := &meetingRepoStub{list: []Meeting{
		{ID: "m2", ProposedTime: late},
		{ID: "m1", ProposedTime: early},
	}}
	svc := NewMeetingService(repo, &participantDirectoryStub{}, nil, fixedNow(t))

	meetings, err := svc.ListMeetings(context.Background())
	if err != nil {
		t.Fatalf("ListMeetings returned error: %v", err)
	}
	if len(meetings) != 2 || meetings[0].ID != "m1" {
		t.Errorf("meetings = %+v, want m1 first", meetings)
	}
}
