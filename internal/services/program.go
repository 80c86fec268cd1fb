package services

import (
	"context"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/events"
	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
)

// ProgramService covers enrollments, assignment progress, submission review
// and the coach's program editing operations.
type ProgramService struct {
	base
}

func NewProgramService(deps Deps) *ProgramService {
	return &ProgramService{base: newBase(deps)}
}

// Enroll starts an active enrollment. A zero startAt means now.
func (s *ProgramService) Enroll(ctx context.Context, templateID, playerUserID uuid.UUID, startAt time.Time) (*models.Enrollment, error) {
	return run(&s.base, ctx, store.OpEnrollPlayer, func(ctx context.Context) (*models.Enrollment, error) {
		c, err := s.caller(ctx, models.RoleCoach)
		if err != nil {
			return nil, err
		}
		if templateID == uuid.Nil || playerUserID == uuid.Nil {
			return nil, invalidInput("template and player are required")
		}
		if startAt.IsZero() {
			startAt = s.now()
		}

		e, err := s.store.EnrollPlayer(ctx, c.Actor(), templateID, playerUserID, startAt)
		if err != nil {
			return nil, err
		}
		s.emit(ctx, teamEvent(c, events.ProgramEnrolled, "enrollment", e.ID, map[string]any{
			"template_id":    templateID,
			"player_user_id": playerUserID,
		}))
		return e, nil
	})
}

// SetEnrollmentStatus moves an enrollment to any status, including back to
// active from completed.
func (s *ProgramService) SetEnrollmentStatus(ctx context.Context, enrollmentID uuid.UUID, status models.EnrollmentStatus) (*models.Enrollment, error) {
	return run(&s.base, ctx, store.OpSetEnrollmentStatus, func(ctx context.Context) (*models.Enrollment, error) {
		c, err := s.caller(ctx, models.RoleCoach)
		if err != nil {
			return nil, err
		}
		if !status.Valid() {
			return nil, invalidInput("status must be active, paused or completed")
		}

		e, err := s.store.SetEnrollmentStatus(ctx, c.Actor(), enrollmentID, status)
		if err != nil {
			return nil, err
		}
		s.emit(ctx, teamEvent(c, events.EnrollmentStatusSet, "enrollment", e.ID, map[string]any{
			"status": string(status),
		}))
		return e, nil
	})
}

// CompleteAssignment records the caller's completion once. Repeats succeed
// with AlreadyCompleted set.
func (s *ProgramService) CompleteAssignment(ctx context.Context, assignmentID uuid.UUID) (*models.AssignmentCompletion, error) {
	return run(&s.base, ctx, store.OpCompleteAssignment, func(ctx context.Context) (*models.AssignmentCompletion, error) {
		c, err := s.caller(ctx, models.RolePlayer)
		if err != nil {
			return nil, err
		}

		completion, err := s.store.CompleteAssignment(ctx, c.Actor(), assignmentID, s.now())
		if err != nil {
			return nil, err
		}
		if !completion.AlreadyCompleted {
			s.emit(ctx, teamEvent(c, events.AssignmentCompleted, "assignment", assignmentID, nil))
		}
		return completion, nil
	})
}

// MarkSubmissionReviewed stamps the first review. Later calls return the
// original review unchanged.
func (s *ProgramService) MarkSubmissionReviewed(ctx context.Context, submissionID uuid.UUID, note *string) (*models.Submission, error) {
	return run(&s.base, ctx, store.OpMarkSubmissionReviewed, func(ctx context.Context) (*models.Submission, error) {
		c, err := s.caller(ctx, models.RoleCoach)
		if err != nil {
			return nil, err
		}
		note, err := optionalText(note, "review note", maxReviewNoteLength)
		if err != nil {
			return nil, err
		}

		sub, err := s.store.MarkSubmissionReviewed(ctx, c.Actor(), submissionID, note, s.now())
		if err != nil {
			return nil, err
		}
		if !sub.AlreadyReviewed {
			s.emit(ctx, teamEvent(c, events.SubmissionReviewed, "submission", sub.ID, nil))
		}
		return sub, nil
	})
}

type FocusInput struct {
	Name        string
	Description *string
	Cues        []string
}

func (s *ProgramService) CreateFocus(ctx context.Context, in FocusInput) (*models.Focus, error) {
	return run(&s.base, ctx, store.OpCreateFocus, func(ctx context.Context) (*models.Focus, error) {
		c, err := s.caller(ctx, models.RoleCoach)
		if err != nil {
			return nil, err
		}
		name, err := requiredText(in.Name, "name", maxFocusNameLength)
		if err != nil {
			return nil, err
		}
		description, err := optionalText(in.Description, "description", maxDescriptionLength)
		if err != nil {
			return nil, err
		}
		cues, err := normalizeCues(in.Cues)
		if err != nil {
			return nil, err
		}

		f, err := s.store.CreateFocus(ctx, c.Actor(), store.CreateFocusParams{
			Name:        name,
			Description: description,
			Cues:        cues,
		})
		if err != nil {
			return nil, err
		}
		s.emit(ctx, teamEvent(c, events.FocusCreated, "focus", f.ID, map[string]any{"cues": len(cues)}))
		return f, nil
	})
}

// DeleteTemplateAssignment removes an assignment and its drill media. The
// template id only mirrors the URL; the store checks the assignment's own
// template.
func (s *ProgramService) DeleteTemplateAssignment(ctx context.Context, templateID, assignmentID uuid.UUID) error {
	_, err := run(&s.base, ctx, store.OpDeleteTemplateAssignment, func(ctx context.Context) (struct{}, error) {
		c, err := s.caller(ctx, models.RoleCoach)
		if err != nil {
			return struct{}{}, err
		}

		if err := s.store.DeleteTemplateAssignment(ctx, c.Actor(), assignmentID); err != nil {
			return struct{}{}, err
		}
		s.emit(ctx, teamEvent(c, events.TemplateAssignmentGone, "assignment", assignmentID, map[string]any{
			"requested_template_id": templateID,
		}))
		return struct{}{}, nil
	})
	return err
}

func (s *ProgramService) DeleteDrillMedia(ctx context.Context, mediaID uuid.UUID) error {
	_, err := run(&s.base, ctx, store.OpDeleteDrillMedia, func(ctx context.Context) (struct{}, error) {
		c, err := s.caller(ctx, models.RoleCoach)
		if err != nil {
			return struct{}{}, err
		}

		if err := s.store.DeleteDrillMedia(ctx, c.Actor(), mediaID); err != nil {
			return struct{}{}, err
		}
		s.emit(ctx, teamEvent(c, events.DrillMediaDeleted, "drill_media", mediaID, nil))
		return struct{}{}, nil
	})
	return err
}
