package testfixtures

import (
	"context"
	"testing"

	"github.com/example/meeting-equity/internal/application"
)

type capturingParticipantRepo struct {
	created application.Participant
}

func (c *capturingParticipantRepo) CreateParticipant(ctx context.Context, participant application.Participant) (application.Participant, error) {
	c.created = participant
	return participant, nil
}

func (c *capturingParticipantRepo) GetParticipant(ctx context.Context, id string) (application.Participant, error) {
	return application.Participant{}, application.ErrNotFound
}

func (c *capturingParticipantRepo) UpdateParticipant(ctx context.Context, participant application.Participant) (application.Participant, error) {
	return participant, nil
}

func (c *capturingParticipantRepo) DeleteParticipant(ctx context.Context, id string) error {
	return nil
}

func (c *capturingParticipantRepo) ListParticipants(ctx context.Context) ([]application.Participant, error) {
	return nil, nil
}

func TestServiceFactoryNewParticipantService(t *testing.T) {
	factory := NewServiceFactory()
	repo := &capturingParticipantRepo{}

	svc := factory.NewParticipantService(ParticipantServiceDeps{Participants: repo})
	input := NewParticipantFixture().Input()

	participant, err := svc.CreateParticipant(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateParticipant returned error: %v", err)
	}

	if participant.ID != "id-1" {
		t.Fatalf("expected generated ID id-1, got %q", participant.ID)
	}
	if repo.created.ID != participant.ID {
		t.Fatalf("repository received unexpected ID: %q", repo.created.ID)
	}
	if !participant.CreatedAt.Equal(factory.Clock.Now()) {
		t.Fatalf("expected timestamp %v, got %v", factory.Clock.Now(), participant.CreatedAt)
	}
}
