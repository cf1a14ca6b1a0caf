package main

import (
	"context"
	"errors"

	"github.com/example/meeting-equity/internal/application"
	"github.com/example/meeting-equity/internal/persistence"
	"github.com/example/meeting-equity/internal/workinghours"
)

type participantRepositoryAdapter struct {
	repo persistence.ParticipantRepository
}

func newParticipantRepositoryAdapter(repo persistence.ParticipantRepository) *participantRepositoryAdapter {
	return &participantRepositoryAdapter{repo: repo}
}

func (a *participantRepositoryAdapter) CreateParticipant(ctx context.Context, participant application.Participant) (application.Participant, error) {
	if err := a.repo.CreateParticipant(ctx, toPersistenceParticipant(participant)); err != nil {
		return application.Participant{}, err
	}
	stored, err := a.repo.GetParticipant(ctx, participant.ID)
	if err != nil {
		return application.Participant{}, err
	}
	return toApplicationParticipant(stored), nil
}

func (a *participantRepositoryAdapter) UpdateParticipant(ctx context.Context, participant application.Participant) (application.Participant, error) {
	if err := a.repo.UpdateParticipant(ctx, toPersistenceParticipant(participant)); err != nil {
		return application.Participant{}, err
	}
	stored, err := a.repo.GetParticipant(ctx, participant.ID)
	if err != nil {
		return application.Participant{}, err
	}
	return toApplicationParticipant(stored), nil
}

func (a *participantRepositoryAdapter) GetParticipant(ctx context.Context, id string) (application.Participant, error) {
	stored, err := a.repo.GetParticipant(ctx, id)
	if err != nil {
		return application.Participant{}, err
	}
	return toApplicationParticipant(stored), nil
}

func (a *participantRepositoryAdapter) ListParticipants(ctx context.Context) ([]application.Participant, error) {
	models, err := a.repo.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	participants := make([]application.Participant, 0, len(models))
	for _, model := range models {
		participants = append(participants, toApplicationParticipant(model))
	}
	return participants, nil
}

func (a *participantRepositoryAdapter) DeleteParticipant(ctx context.Context, id string) error {
	return a.repo.DeleteParticipant(ctx, id)
}

type participantDirectoryAdapter struct {
	repo persistence.ParticipantRepository
}

func newParticipantDirectoryAdapter(repo persistence.ParticipantRepository) *participantDirectoryAdapter {
	return &participantDirectoryAdapter{repo: repo}
}

func (a *participantDirectoryAdapter) MissingParticipantIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	missing := make([]string, 0)
	for _, id := range ids {
		if _, err := a.repo.GetParticipant(ctx, id); err != nil {
			if errors.Is(err, persistence.ErrNotFound) {
				missing = append(missing, id)
				continue
			}
			return nil, err
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}
	return missing, nil
}

type meetingRepositoryAdapter struct {
	repo persistence.MeetingRepository
}

func newMeetingRepositoryAdapter(repo persistence.MeetingRepository) *meetingRepositoryAdapter {
	return &meetingRepositoryAdapter{repo: repo}
}

func (a *meetingRepositoryAdapter) CreateMeeting(ctx context.Context, meeting application.Meeting) (application.Meeting, error) {
	if err := a.repo.CreateMeeting(ctx, toPersistenceMeeting(meeting)); err != nil {
		return application.Meeting{}, err
	}
	stored, err := a.repo.GetMeeting(ctx, meeting.ID)
	if err != nil {
		return application.Meeting{}, err
	}
	return toApplicationMeeting(stored), nil
}

func (a *meetingRepositoryAdapter) GetMeeting(ctx context.Context, id string) (application.Meeting, error) {
	stored, err := a.repo.GetMeeting(ctx, id)
	if err != nil {
		return application.Meeting{}, err
	}
	return toApplicationMeeting(stored), nil
}

func (a *meetingRepositoryAdapter) UpdateMeeting(ctx context.Context, meeting application.Meeting) (application.Meeting, error) {
	if err := a.repo.UpdateMeeting(ctx, toPersistenceMeeting(meeting)); err != nil {
		return application.Meeting{}, err
	}
	stored, err := a.repo.GetMeeting(ctx, meeting.ID)
	if err != nil {
		return application.Meeting{}, err
	}
	return toApplicationMeeting(stored), nil
}

func (a *meetingRepositoryAdapter) ListMeetings(ctx context.Context) ([]application.Meeting, error) {
	models, err := a.repo.ListMeetings(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	meetings := make([]application.Meeting, 0, len(models))
	for _, model := range models {
		meetings = append(meetings, toApplicationMeeting(model))
	}
	return meetings, nil
}

func (a *meetingRepositoryAdapter) DeleteMeeting(ctx context.Context, id string) error {
	return a.repo.DeleteMeeting(ctx, id)
}

type countryConfigRepositoryAdapter struct {
	repo persistence.WorkingHoursRepository
}

func newCountryConfigRepositoryAdapter(repo persistence.WorkingHoursRepository) *countryConfigRepositoryAdapter {
	return &countryConfigRepositoryAdapter{repo: repo}
}

func (a *countryConfigRepositoryAdapter) UpsertCountryConfig(ctx context.Context, config application.CountryConfig) error {
	return a.repo.UpsertWorkingHours(ctx, toPersistenceWorkingHours(config))
}

func (a *countryConfigRepositoryAdapter) GetCountryConfig(ctx context.Context, countryCode string) (application.CountryConfig, error) {
	stored, err := a.repo.GetWorkingHours(ctx, countryCode)
	if err != nil {
		return application.CountryConfig{}, err
	}
	return toApplicationCountryConfig(stored), nil
}

func (a *countryConfigRepositoryAdapter) ListCountryConfigs(ctx context.Context) ([]application.CountryConfig, error) {
	models, err := a.repo.ListWorkingHours(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	configs := make([]application.CountryConfig, 0, len(models))
	for _, model := range models {
		configs = append(configs, toApplicationCountryConfig(model))
	}
	return configs, nil
}

func (a *countryConfigRepositoryAdapter) DeleteCountryConfig(ctx context.Context, countryCode string) error {
	return a.repo.DeleteWorkingHours(ctx, countryCode)
}

func toPersistenceParticipant(p application.Participant) persistence.Participant {
	return persistence.Participant{
		ID:        p.ID,
		Name:      p.Name,
		Timezone:  p.Timezone,
		Country:   p.Country,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toApplicationParticipant(p persistence.Participant) application.Participant {
	return application.Participant{
		ID:        p.ID,
		Name:      p.Name,
		Timezone:  p.Timezone,
		Country:   p.Country,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPersistenceMeeting(m application.Meeting) persistence.Meeting {
	return persistence.Meeting{
		ID:              m.ID,
		Title:           m.Title,
		ProposedTime:    m.ProposedTime,
		DurationMinutes: m.DurationMinutes,
		Notes:           m.Notes,
		ParticipantIDs:  append([]string(nil), m.ParticipantIDs...),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toApplicationMeeting(m persistence.Meeting) application.Meeting {
	return application.Meeting{
		ID:              m.ID,
		Title:           m.Title,
		ProposedTime:    m.ProposedTime,
		DurationMinutes: m.DurationMinutes,
		Notes:           m.Notes,
		ParticipantIDs:  append([]string(nil), m.ParticipantIDs...),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toPersistenceWorkingHours(c application.CountryConfig) persistence.WorkingHours {
	return persistence.WorkingHours{
		Country:            c.Country,
		GreenStart:         int(c.Config.GreenStart),
		GreenEnd:           int(c.Config.GreenEnd),
		OrangeMorningStart: int(c.Config.OrangeMorningStart),
		OrangeMorningEnd:   int(c.Config.OrangeMorningEnd),
		OrangeEveningStart: int(c.Config.OrangeEveningStart),
		OrangeEveningEnd:   int(c.Config.OrangeEveningEnd),
		WorkDays:           c.Config.SortedWorkDays(),
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func toApplicationCountryConfig(w persistence.WorkingHours) application.CountryConfig {
	cfg := workinghours.Default()
	cfg.GreenStart = workinghours.Minute(w.GreenStart)
	cfg.GreenEnd = workinghours.Minute(w.GreenEnd)
	cfg.OrangeMorningStart = workinghours.Minute(w.OrangeMorningStart)
	cfg.OrangeMorningEnd = workinghours.Minute(w.OrangeMorningEnd)
	cfg.OrangeEveningStart = workinghours.Minute(w.OrangeEveningStart)
	cfg.OrangeEveningEnd = workinghours.Minute(w.OrangeEveningEnd)
	cfg.WorkDays = make(map[int]bool, len(w.WorkDays))
	for _, day := range w.WorkDays {
		cfg.WorkDays[day] = true
	}
	return application.CountryConfig{
		Country:   w.Country,
		Config:    cfg,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
