package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const enrollmentColumns = `id, template_id, player_user_id, status, start_at, created_at, updated_at`

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	var status string
	if err := row.Scan(&e.ID, &e.TemplateID, &e.PlayerUserID, &status, &e.StartAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Status = models.EnrollmentStatus(status)
	return &e, nil
}

const submissionColumns = `s.id, s.enrollment_id, s.media_ref, s.reviewed_at, s.review_note, s.reviewed_by, s.created_at`

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	var sub models.Submission
	err := row.Scan(&sub.ID, &sub.EnrollmentID, &sub.MediaRef, &sub.ReviewedAt, &sub.ReviewNote, &sub.ReviewedBy, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) EnrollPlayer(ctx context.Context, actor store.Actor, templateID, playerUserID uuid.UUID, startAt time.Time) (*models.Enrollment, error) {
	var enrollment *models.Enrollment
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		// Locking the template serializes enrollments into it.
		var id uuid.UUID
		err := tx.QueryRow(ctx, `
			SELECT id FROM program_templates
			WHERE id = $1 AND team_id = $2
			FOR UPDATE
		`, templateID, actor.TeamID).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return store.NotFound(store.OpEnrollPlayer, "program template not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load template: %w", err)
		}

		var isPlayer bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM profiles WHERE user_id = $1 AND team_id = $2 AND role = $3)
		`, playerUserID, actor.TeamID, models.RolePlayer).Scan(&isPlayer)
		if err != nil {
			return fmt.Errorf("failed to check player: %w", err)
		}
		if !isPlayer {
			return store.NotFound(store.OpEnrollPlayer, "player not found")
		}

		var open bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM program_enrollments
				WHERE template_id = $1 AND player_user_id = $2 AND status <> $3
			)
		`, templateID, playerUserID, models.EnrollmentCompleted).Scan(&open)
		if err != nil {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}
		if open {
			return store.InvalidState(store.OpEnrollPlayer, "player already enrolled in this program")
		}

		enrollment, err = scanEnrollment(tx.QueryRow(ctx, `
			INSERT INTO program_enrollments (template_id, player_user_id, status, start_at)
			VALUES ($1, $2, $3, $4)
			RETURNING `+enrollmentColumns,
			templateID, playerUserID, models.EnrollmentActive, startAt))
		if err != nil {
			return fmt.Errorf("failed to enroll player: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *Store) SetEnrollmentStatus(ctx context.Context, actor store.Actor, enrollmentID uuid.UUID, status models.EnrollmentStatus) (*models.Enrollment, error) {
	enrollment, err := scanEnrollment(s.db.Pool.QueryRow(ctx, `
		UPDATE program_enrollments e
		SET status = $3, updated_at = NOW()
		FROM program_templates t
		WHERE e.id = $1 AND e.template_id = t.id AND t.team_id = $2
		RETURNING e.id, e.template_id, e.player_user_id, e.status, e.start_at, e.created_at, e.updated_at
	`, enrollmentID, actor.TeamID, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.InvalidState(store.OpSetEnrollmentStatus, "enrollment does not belong to your team")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set enrollment status: %w", err)
	}
	return enrollment, nil
}

func (s *Store) CompleteAssignment(ctx context.Context, actor store.Actor, assignmentID uuid.UUID, at time.Time) (*models.AssignmentCompletion, error) {
	completion := &models.AssignmentCompletion{AssignmentID: assignmentID, PlayerUserID: actor.UserID}
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var templateID uuid.UUID
		err := tx.QueryRow(ctx, `
			SELECT a.template_id
			FROM program_assignments a
			JOIN program_templates t ON t.id = a.template_id
			WHERE a.id = $1 AND t.team_id = $2
		`, assignmentID, actor.TeamID).Scan(&templateID)
		if errors.Is(err, pgx.ErrNoRows) {
			return store.NotFound(store.OpCompleteAssignment, "assignment not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load assignment: %w", err)
		}

		var enrolled bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM program_enrollments WHERE template_id = $1 AND player_user_id = $2)
		`, templateID, actor.UserID).Scan(&enrolled)
		if err != nil {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}
		if !enrolled {
			return store.Forbidden(store.OpCompleteAssignment, "not enrolled in this program")
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO program_assignment_completions (assignment_id, player_user_id, completed_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (assignment_id, player_user_id) DO NOTHING
			RETURNING completed_at
		`, assignmentID, actor.UserID, at).Scan(&completion.CompletedAt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to complete assignment: %w", err)
		}

		completion.AlreadyCompleted = true
		err = tx.QueryRow(ctx, `
			SELECT completed_at FROM program_assignment_completions
			WHERE assignment_id = $1 AND player_user_id = $2
		`, assignmentID, actor.UserID).Scan(&completion.CompletedAt)
		if err != nil {
			return fmt.Errorf("failed to load completion: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completion, nil
}

func (s *Store) MarkSubmissionReviewed(ctx context.Context, actor store.Actor, submissionID uuid.UUID, note *string, at time.Time) (*models.Submission, error) {
	var submission *models.Submission
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		current, err := scanSubmission(tx.QueryRow(ctx, `
			SELECT `+submissionColumns+`
			FROM program_submissions s
			JOIN program_enrollments e ON e.id = s.enrollment_id
			JOIN program_templates t ON t.id = e.template_id
			WHERE s.id = $1 AND t.team_id = $2
			FOR UPDATE OF s
		`, submissionID, actor.TeamID))
		if errors.Is(err, pgx.ErrNoRows) {
			return store.NotFound(store.OpMarkSubmissionReviewed, "submission not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load submission: %w", err)
		}
		if current.ReviewedAt != nil {
			current.AlreadyReviewed = true
			submission = current
			return nil
		}

		submission, err = scanSubmission(tx.QueryRow(ctx, `
			UPDATE program_submissions s
			SET reviewed_at = $2, review_note = $3, reviewed_by = $4
			WHERE s.id = $1
			RETURNING `+submissionColumns,
			submissionID, at, note, actor.UserID))
		if err != nil {
			return fmt.Errorf("failed to review submission: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *Store) CreateFocus(ctx context.Context, actor store.Actor, params store.CreateFocusParams) (*models.Focus, error) {
	cues := params.Cues
	if cues == nil {
		cues = []string{}
	}

	var f models.Focus
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO program_focuses (team_id, name, description, cues, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, team_id, name, description, cues, created_by, created_at
	`, actor.TeamID, params.Name, params.Description, cues, actor.UserID).Scan(
		&f.ID, &f.TeamID, &f.Name, &f.Description, &f.Cues, &f.CreatedBy, &f.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create focus: %w", err)
	}
	return &f, nil
}

// DeleteTemplateAssignment removes the assignment; its drill media go with
// it through the foreign key cascade.
func (s *Store) DeleteTemplateAssignment(ctx context.Context, actor store.Actor, assignmentID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM program_assignments a
		USING program_templates t
		WHERE a.id = $1 AND a.template_id = t.id AND t.team_id = $2
	`, assignmentID, actor.TeamID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound(store.OpDeleteTemplateAssignment, "assignment not found")
	}
	return nil
}

func (s *Store) DeleteDrillMedia(ctx context.Context, actor store.Actor, mediaID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM program_drill_media m
		USING program_assignments a, program_templates t
		WHERE m.id = $1 AND m.assignment_id = a.id AND a.template_id = t.id AND t.team_id = $2
	`, mediaID, actor.TeamID)
	if err != nil {
		return fmt.Errorf("failed to delete drill media: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound(store.OpDeleteDrillMedia, "media not found")
	}
	return nil
}
