package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/example/meeting-equity/internal/persistence"
)

// CreateParticipant inserts a new participant record.
func (s *Store) CreateParticipant(ctx context.Context, participant persistence.Participant) error {
	now := time.Now().UTC()
	if participant.CreatedAt.IsZero() {
		participant.CreatedAt = now
	}
	if participant.UpdatedAt.IsZero() {
		participant.UpdatedAt = now
	}

	const query = `
		INSERT INTO participants (id, name, timezone, country, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		participant.ID, participant.Name, participant.Timezone, participant.Country,
		participant.Notes, participant.CreatedAt, participant.UpdatedAt)
	return mapError(err)
}

// UpdateParticipant rewrites an existing participant record.
func (s *Store) UpdateParticipant(ctx context.Context, participant persistence.Participant) error {
	participant.UpdatedAt = time.Now().UTC()

	const query = `
		UPDATE participants
		SET name = ?, timezone = ?, country = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		participant.Name, participant.Timezone, participant.Country,
		participant.Notes, participant.UpdatedAt, participant.ID)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// GetParticipant fetches a participant by identifier.
func (s *Store) GetParticipant(ctx context.Context, id string) (persistence.Participant, error) {
	const query = `
		SELECT id, name, timezone, country, notes, created_at, updated_at
		FROM participants WHERE id = ?
	`
	var p persistence.Participant
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Timezone, &p.Country, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return persistence.Participant{}, mapError(err)
	}
	return p, nil
}

// ListParticipants returns every participant ordered by name then id.
func (s *Store) ListParticipants(ctx context.Context) ([]persistence.Participant, error) {
	const query = `
		SELECT id, name, timezone, country, notes, created_at, updated_at
		FROM participants ORDER BY name, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var participants []persistence.Participant
	for rows.Next() {
		var p persistence.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Timezone, &p.Country, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// DeleteParticipant removes a participant by identifier.
func (s *Store) DeleteParticipant(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// MissingParticipantIDs reports which of the supplied ids have no stored
// participant record.
func (s *Store) MissingParticipantIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var missing []string
	for _, id := range ids {
		if _, err := s.GetParticipant(ctx, id); err != nil {
			if errors.Is(err, persistence.ErrNotFound) {
				missing = append(missing, id)
				continue
			}
			return nil, err
		}
	}
	return missing, nil
}

var _ persistence.ParticipantRepository = (*Store)(nil)
