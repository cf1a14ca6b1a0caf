package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/meeting-equity/internal/country"
	"github.com/example/meeting-equity/internal/persistence"
	"github.com/example/meeting-equity/internal/timezone"
)

// ParticipantRepository captures the persistence interactions needed by the service.
type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, participant Participant) (Participant, error)
	UpdateParticipant(ctx context.Context, participant Participant) (Participant, error)
	GetParticipant(ctx context.Context, id string) (Participant, error)
	ListParticipants(ctx context.Context) ([]Participant, error)
	DeleteParticipant(ctx context.Context, id string) error
}

// ParticipantService orchestrates validation and persistence for participants.
type ParticipantService struct {
	participants ParticipantRepository
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewParticipantService wires dependencies for participant operations.
func NewParticipantService(participants ParticipantRepository, idGenerator func() string, now func() time.Time) *ParticipantService {
	return NewParticipantServiceWithLogger(participants, idGenerator, now, nil)
}

// NewParticipantServiceWithLogger additionally attaches a structured logger.
func NewParticipantServiceWithLogger(participants ParticipantRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ParticipantService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ParticipantService{
		participants: participants,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

// CreateParticipant validates the input before delegating to persistence.
func (s *ParticipantService) CreateParticipant(ctx context.Context, input ParticipantInput) (Participant, error) {
	if s == nil {
		return Participant{}, fmt.Errorf("ParticipantService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "participants", "create")

	if err := validateParticipantInput(input); err != nil {
		logger.Info("participant rejected", "kind", ErrorKind(err))
		return Participant{}, err
	}

	createdAt := s.now()
	participant := Participant{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(input.Name),
		Timezone:  input.Timezone,
		Country:   country.Normalize(input.Country),
		Notes:     input.Notes,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if s.participants == nil {
		return participant, nil
	}

	persisted, err := s.participants.CreateParticipant(ctx, participant)
	if err != nil {
		return Participant{}, mapRepoError(err)
	}
	logger.Info("participant created", "participant_id", persisted.ID)
	return persisted, nil
}

// UpdateParticipant applies validation before updating persistence state.
func (s *ParticipantService) UpdateParticipant(ctx context.Context, id string, input ParticipantInput) (Participant, error) {
	if s == nil {
		return Participant{}, fmt.Errorf("ParticipantService is nil")
	}
	if s.participants == nil {
		return Participant{}, fmt.Errorf("participant repository not configured")
	}

	existing, err := s.participants.GetParticipant(ctx, id)
	if err != nil {
		return Participant{}, mapRepoError(err)
	}

	if err := validateParticipantInput(input); err != nil {
		return Participant{}, err
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Timezone = input.Timezone
	updated.Country = country.Normalize(input.Country)
	updated.Notes = input.Notes
	updated.UpdatedAt = s.now()

	persisted, err := s.participants.UpdateParticipant(ctx, updated)
	if err != nil {
		return Participant{}, mapRepoError(err)
	}
	return persisted, nil
}

// GetParticipant fetches one participant by identifier.
func (s *ParticipantService) GetParticipant(ctx context.Context, id string) (Participant, error) {
	if s == nil || s.participants == nil {
		return Participant{}, ErrNotFound
	}
	participant, err := s.participants.GetParticipant(ctx, id)
	if err != nil {
		return Participant{}, mapRepoError(err)
	}
	return participant, nil
}

// ListParticipants enumerates participants in deterministic name order.
func (s *ParticipantService) ListParticipants(ctx context.Context) ([]Participant, error) {
	if s == nil || s.participants == nil {
		return nil, nil
	}
	participants, err := s.participants.ListParticipants(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	ordered := make([]Participant, len(participants))
	copy(ordered, participants)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Name == ordered[j].Name {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Name < ordered[j].Name
	})
	return ordered, nil
}

// DeleteParticipant removes a participant by identifier.
func (s *ParticipantService) DeleteParticipant(ctx context.Context, id string) error {
	if s == nil || s.participants == nil {
		return ErrNotFound
	}
	if err := s.participants.DeleteParticipant(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func validateParticipantInput(input ParticipantInput) error {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if err := timezone.Validate(input.Timezone); err != nil {
		vErr.add("timezone", fmt.Sprintf("unknown IANA time zone %q", input.Timezone))
	}
	if !country.IsValid(input.Country) {
		vErr.add("country", fmt.Sprintf("unknown ISO 3166-1 alpha-2 country code %q", input.Country))
	}

	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		vErr := &ValidationError{}
		vErr.add("participants", "related records are missing")
		return vErr
	}
	return err
}
