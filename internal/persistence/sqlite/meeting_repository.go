package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/meeting-equity/internal/persistence"
)

// CreateMeeting inserts a meeting together with its ordered participant
// list inside one transaction.
func (s *Store) CreateMeeting(ctx context.Context, meeting persistence.Meeting) error {
	now := time.Now().UTC()
	if meeting.CreatedAt.IsZero() {
		meeting.CreatedAt = now
	}
	if meeting.UpdatedAt.IsZero() {
		meeting.UpdatedAt = now
	}

	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		const query = `
			INSERT INTO meetings (id, title, proposed_time, duration_minutes, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := tx.ExecContext(ctx, query,
			meeting.ID, meeting.Title, meeting.ProposedTime.UTC(), meeting.DurationMinutes,
			meeting.Notes, meeting.CreatedAt, meeting.UpdatedAt); err != nil {
			return mapError(err)
		}
		return insertMeetingParticipants(ctx, tx, meeting.ID, meeting.ParticipantIDs)
	})
}

// UpdateMeeting rewrites a meeting and replaces its participant list.
func (s *Store) UpdateMeeting(ctx context.Context, meeting persistence.Meeting) error {
	meeting.UpdatedAt = time.Now().UTC()

	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		const query = `
			UPDATE meetings
			SET title = ?, proposed_time = ?, duration_minutes = ?, notes = ?, updated_at = ?
			WHERE id = ?
		`
		result, err := tx.ExecContext(ctx, query,
			meeting.Title, meeting.ProposedTime.UTC(), meeting.DurationMinutes,
			meeting.Notes, meeting.UpdatedAt, meeting.ID)
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

		if _, err := tx.ExecContext(ctx, `DELETE FROM meeting_participants WHERE meeting_id = ?`, meeting.ID); err != nil {
			return mapError(err)
		}
		return insertMeetingParticipants(ctx, tx, meeting.ID, meeting.ParticipantIDs)
	})
}

func insertMeetingParticipants(ctx context.Context, tx *sql.Tx, meetingID string, participantIDs []string) error {
	const query = `
		INSERT INTO meeting_participants (meeting_id, participant_id, position)
		VALUES (?, ?, ?)
	`
	for position, participantID := range participantIDs {
		if _, err := tx.ExecContext(ctx, query, meetingID, participantID, position); err != nil {
			return mapError(err)
		}
	}
	return nil
}

// GetMeeting fetches a meeting and its participant list in stored order.
func (s *Store) GetMeeting(ctx context.Context, id string) (persistence.Meeting, error) {
	const query = `
		SELECT id, title, proposed_time, duration_minutes, notes, created_at, updated_at
		FROM meetings WHERE id = ?
	`
	var m persistence.Meeting
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Title, &m.ProposedTime, &m.DurationMinutes, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return persistence.Meeting{}, mapError(err)
	}

	participants, err := s.meetingParticipants(ctx, id)
	if err != nil {
		return persistence.Meeting{}, err
	}
	m.ParticipantIDs = participants
	m.ProposedTime = m.ProposedTime.UTC()
	return m, nil
}

func (s *Store) meetingParticipants(ctx context.Context, meetingID string) ([]string, error) {
	const query = `
		SELECT participant_id FROM meeting_participants
		WHERE meeting_id = ? ORDER BY position
	`
	rows, err := s.db.QueryContext(ctx, query, meetingID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListMeetings returns every meeting ordered by proposed time then id.
func (s *Store) ListMeetings(ctx context.Context) ([]persistence.Meeting, error) {
	const query = `
		SELECT id, title, proposed_time, duration_minutes, notes, created_at, updated_at
		FROM meetings ORDER BY proposed_time, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var meetings []persistence.Meeting
	for rows.Next() {
		var m persistence.Meeting
		if err := rows.Scan(&m.ID, &m.Title, &m.ProposedTime, &m.DurationMinutes, &m.Notes, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.ProposedTime = m.ProposedTime.UTC()
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range meetings {
		participants, err := s.meetingParticipants(ctx, meetings[i].ID)
		if err != nil {
			return nil, err
		}
		meetings[i].ParticipantIDs = participants
	}
	return meetings, nil
}

// DeleteMeeting removes a meeting; the participant join rows cascade.
func (s *Store) DeleteMeeting(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id)
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

var _ persistence.MeetingRepository = (*Store)(nil)
