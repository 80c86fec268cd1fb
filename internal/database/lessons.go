package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const lessonColumns = `id, team_id, coach_user_id, player_user_id, created_by, status,
	start_at, duration_minutes, note, cancelled_by, created_at, updated_at`

func scanLesson(row pgx.Row) (*models.Lesson, error) {
	var l models.Lesson
	var status string
	err := row.Scan(
		&l.ID, &l.TeamID, &l.CoachUserID, &l.PlayerUserID, &l.CreatedBy, &status,
		&l.StartAt, &l.DurationMinutes, &l.Note, &l.CancelledBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Status = models.LessonStatus(status)
	return &l, nil
}

// lockLesson loads a team lesson for update.
func lockLesson(ctx context.Context, tx pgx.Tx, op string, actor store.Actor, lessonID uuid.UUID) (*models.Lesson, error) {
	lesson, err := scanLesson(tx.QueryRow(ctx, `
		SELECT `+lessonColumns+`
		FROM lessons WHERE id = $1 AND team_id = $2
		FOR UPDATE
	`, lessonID, actor.TeamID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound(op, "lesson not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	return lesson, nil
}

func (s *Store) CreateLessonRequest(ctx context.Context, actor store.Actor, params store.CreateLessonParams) (*models.Lesson, error) {
	var lesson *models.Lesson
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var role string
		var active bool
		err := tx.QueryRow(ctx, `
			SELECT role, is_active FROM profiles
			WHERE user_id = $1 AND team_id = $2
			FOR SHARE
		`, params.CounterpartUserID, actor.TeamID).Scan(&role, &active)
		if errors.Is(err, pgx.ErrNoRows) {
			return store.NotFound(store.OpCreateLessonRequest, "counterpart not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load counterpart: %w", err)
		}
		if models.Role(role) == actor.Role {
			return store.InvalidState(store.OpCreateLessonRequest, "a lesson pairs a coach with a player")
		}
		if !active {
			return store.InvalidState(store.OpCreateLessonRequest, "counterpart is inactive")
		}

		coachID, playerID := actor.UserID, params.CounterpartUserID
		if actor.Role == models.RolePlayer {
			coachID, playerID = playerID, coachID
		}

		lesson, err = scanLesson(tx.QueryRow(ctx, `
			INSERT INTO lessons (team_id, coach_user_id, player_user_id, created_by, start_at, duration_minutes, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+lessonColumns,
			actor.TeamID, coachID, playerID, actor.UserID, params.StartAt, params.DurationMinutes, params.Note))
		if err != nil {
			return fmt.Errorf("failed to create lesson: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *Store) CancelLesson(ctx context.Context, actor store.Actor, lessonID uuid.UUID, note *string) (*models.Lesson, error) {
	var lesson *models.Lesson
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		current, err := lockLesson(ctx, tx, store.OpCancelLesson, actor, lessonID)
		if err != nil {
			return err
		}
		if !current.IsParty(actor.UserID) {
			return store.Forbidden(store.OpCancelLesson, "only the lesson's coach or player can cancel it")
		}
		if current.Status == models.LessonCancelled {
			return store.InvalidState(store.OpCancelLesson, "lesson already cancelled")
		}

		lesson, err = scanLesson(tx.QueryRow(ctx, `
			UPDATE lessons
			SET status = $2, note = COALESCE($3, note), cancelled_by = $4, updated_at = NOW()
			WHERE id = $1
			RETURNING `+lessonColumns,
			lessonID, models.LessonCancelled, note, actor.UserID))
		if err != nil {
			return fmt.Errorf("failed to cancel lesson: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *Store) RespondToLessonInvite(ctx context.Context, actor store.Actor, lessonID uuid.UUID, accept bool) (*models.Lesson, error) {
	status := models.LessonDeclined
	if accept {
		status = models.LessonAccepted
	}

	var lesson *models.Lesson
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		current, err := lockLesson(ctx, tx, store.OpRespondToLessonInvite, actor, lessonID)
		if err != nil {
			return err
		}
		if !current.IsInvitedPlayer(actor.UserID) {
			return store.Forbidden(store.OpRespondToLessonInvite, "only the invited player can respond")
		}
		if current.Status != models.LessonPending {
			return store.InvalidState(store.OpRespondToLessonInvite, "invite is no longer pending")
		}

		lesson, err = scanLesson(tx.QueryRow(ctx, `
			UPDATE lessons SET status = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING `+lessonColumns,
			lessonID, status))
		if err != nil {
			return fmt.Errorf("failed to respond to invite: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *Store) SetLessonParticipant(ctx context.Context, actor store.Actor, lessonID, playerUserID uuid.UUID, present bool) (*models.LessonParticipant, error) {
	var participant models.LessonParticipant
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var coachID uuid.UUID
		err := tx.QueryRow(ctx, `
			SELECT coach_user_id FROM lessons
			WHERE id = $1 AND team_id = $2
			FOR SHARE
		`, lessonID, actor.TeamID).Scan(&coachID)
		if errors.Is(err, pgx.ErrNoRows) {
			return store.NotFound(store.OpSetLessonParticipant, "lesson not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load lesson: %w", err)
		}
		if coachID != actor.UserID {
			return store.Forbidden(store.OpSetLessonParticipant, "only the lesson's coach can record attendance")
		}

		var exists bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM profiles WHERE user_id = $1 AND team_id = $2 AND role = $3)
		`, playerUserID, actor.TeamID, models.RolePlayer).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check player: %w", err)
		}
		if !exists {
			return store.NotFound(store.OpSetLessonParticipant, "player not found")
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO lesson_participants (lesson_id, player_user_id, present, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (lesson_id, player_user_id)
			DO UPDATE SET present = EXCLUDED.present, updated_at = NOW()
			RETURNING lesson_id, player_user_id, present, updated_at
		`, lessonID, playerUserID, present).Scan(
			&participant.LessonID, &participant.PlayerUserID, &participant.Present, &participant.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to set participant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &participant, nil
}
