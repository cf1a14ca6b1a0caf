package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/meeting-equity/internal/equity"
)

// AnalysisService computes the equity picture for a meeting: per-participant
// statuses at the proposed time, the aggregate score, the 24-hour heatmap for
// the proposed date, and the top slot suggestions. Recomputation requests are
// funneled through a coordinator so only the most recent request publishes a
// result.
type AnalysisService struct {
	meetings     MeetingRepository
	participants ParticipantRepository
	classifier   *equity.Classifier
	generator    *equity.Generator
	coordinator  *equity.Coordinator[Analysis]
	suggestions  int
	now          func() time.Time
	logger       *slog.Logger
}

// DefaultSuggestionCount is the number of ranked slots returned when the
// caller does not override it.
const DefaultSuggestionCount = 3

// NewAnalysisService wires dependencies for analysis operations.
func NewAnalysisService(meetings MeetingRepository, participants ParticipantRepository, classifier *equity.Classifier, now func() time.Time) *AnalysisService {
	return NewAnalysisServiceWithLogger(meetings, participants, classifier, now, nil)
}

// NewAnalysisServiceWithLogger additionally attaches a structured logger.
func NewAnalysisServiceWithLogger(meetings MeetingRepository, participants ParticipantRepository, classifier *equity.Classifier, now func() time.Time, logger *slog.Logger) *AnalysisService {
	if now == nil {
		now = time.Now
	}
	return &AnalysisService{
		meetings:     meetings,
		participants: participants,
		classifier:   classifier,
		generator:    equity.NewGenerator(classifier),
		coordinator:  equity.NewCoordinator[Analysis](),
		suggestions:  DefaultSuggestionCount,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

// SetSuggestionCount overrides how many ranked slots Analyze returns.
// Non-positive values restore the default.
func (s *AnalysisService) SetSuggestionCount(n int) {
	if s == nil {
		return
	}
	if n <= 0 {
		n = DefaultSuggestionCount
	}
	s.suggestions = n
}

// Analyze computes the full equity picture for a stored meeting.
func (s *AnalysisService) Analyze(ctx context.Context, meetingID string) (Analysis, error) {
	if s == nil {
		return Analysis{}, fmt.Errorf("AnalysisService is nil")
	}
	if s.meetings == nil {
		return Analysis{}, fmt.Errorf("meeting repository not configured")
	}

	meeting, err := s.meetings.GetMeeting(ctx, meetingID)
	if err != nil {
		return Analysis{}, mapMeetingRepoError(err)
	}
	return s.analyzeMeeting(ctx, meeting)
}

// AnalyzeAt computes the equity picture for an ad-hoc participant set and
// instant, without a stored meeting.
func (s *AnalysisService) AnalyzeAt(ctx context.Context, participants []equity.Participant, proposedTime time.Time) (Analysis, error) {
	if s == nil {
		return Analysis{}, fmt.Errorf("AnalysisService is nil")
	}
	return s.compute(ctx, "", participants, proposedTime)
}

// Recompute schedules an analysis through the coordinator: any in-flight
// recomputation for an earlier request is cancelled, and only the newest
// request's result is published. The returned channel closes when this
// request settles, whether it published or was superseded.
func (s *AnalysisService) Recompute(ctx context.Context, meetingID string) (uint64, <-chan struct{}, error) {
	if s == nil {
		return 0, nil, fmt.Errorf("AnalysisService is nil")
	}
	if s.meetings == nil {
		return 0, nil, fmt.Errorf("meeting repository not configured")
	}

	meeting, err := s.meetings.GetMeeting(ctx, meetingID)
	if err != nil {
		return 0, nil, mapMeetingRepoError(err)
	}

	logger := serviceLogger(ctx, s.logger, "analysis", "recompute", "meeting_id", meeting.ID)
	generation, done := s.coordinator.Submit(ctx, func(taskCtx context.Context) (Analysis, error) {
		analysis, err := s.analyzeMeeting(taskCtx, meeting)
		if err != nil {
			logger.Warn("recomputation failed", "error", err, "kind", ErrorKind(err))
			return Analysis{}, err
		}
		return analysis, nil
	})
	return generation, done, nil
}

// LatestAnalysis returns the most recently published analysis, its
// generation, and whether one exists yet.
func (s *AnalysisService) LatestAnalysis() (Analysis, uint64, bool) {
	if s == nil {
		return Analysis{}, 0, false
	}
	return s.coordinator.Latest()
}

func (s *AnalysisService) analyzeMeeting(ctx context.Context, meeting Meeting) (Analysis, error) {
	participants, err := s.resolveParticipants(ctx, meeting.ParticipantIDs)
	if err != nil {
		return Analysis{}, err
	}
	return s.compute(ctx, meeting.ID, participants, meeting.ProposedTime)
}

func (s *AnalysisService) compute(ctx context.Context, meetingID string, participants []equity.Participant, proposedTime time.Time) (Analysis, error) {
	proposedTime = proposedTime.UTC()
	logger := serviceLogger(ctx, s.logger, "analysis", "compute", "meeting_id", meetingID)

	statuses := s.classifier.ClassifyAll(ctx, participants, proposedTime)
	score := equity.Score(statuses)

	slots, err := s.generator.GenerateSlots(ctx, proposedTime, participants)
	if err != nil {
		return Analysis{}, err
	}

	analysis := Analysis{
		MeetingID:    meetingID,
		ProposedTime: proposedTime,
		Statuses:     statuses,
		Score:        score,
		Slots:        slots,
		Suggestions:  equity.TopSuggestions(slots, s.suggestions),
		GeneratedAt:  s.now(),
	}

	logger.Info("analysis computed",
		"participants", len(participants),
		"score_available", score.Available,
		"score", score.DisplayScore(),
	)
	return analysis, nil
}

func (s *AnalysisService) resolveParticipants(ctx context.Context, ids []string) ([]equity.Participant, error) {
	if s.participants == nil {
		return nil, fmt.Errorf("participant repository not configured")
	}
	participants := make([]equity.Participant, 0, len(ids))
	for _, id := range ids {
		record, err := s.participants.GetParticipant(ctx, id)
		if err != nil {
			return nil, mapRepoError(err)
		}
		participants = append(participants, equity.Participant{
			ID:       record.ID,
			Name:     record.Name,
			Timezone: record.Timezone,
			Country:  record.Country,
			Notes:    record.Notes,
		})
	}
	return participants, nil
}
