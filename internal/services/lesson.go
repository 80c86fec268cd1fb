package services

import (
	"context"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/events"
	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
)

// LessonService runs the lesson request and invite state machine:
// pending -> accepted|declined by the invited player, and any state but
// cancelled -> cancelled by either party.
type LessonService struct {
	base
}

func NewLessonService(deps Deps) *LessonService {
	return &LessonService{base: newBase(deps)}
}

type LessonRequest struct {
	CounterpartUserID uuid.UUID
	StartAt           time.Time
	DurationMinutes   int
	Note              *string
}

// Request creates a pending lesson between the caller and a teammate of the
// opposite role.
func (s *LessonService) Request(ctx context.Context, req LessonRequest) (*models.Lesson, error) {
	return run(&s.base, ctx, store.OpCreateLessonRequest, func(ctx context.Context) (*models.Lesson, error) {
		c, err := s.caller(ctx)
		if err != nil {
			return nil, err
		}
		if req.CounterpartUserID == uuid.Nil || req.CounterpartUserID == c.UserID {
			return nil, invalidInput("a lesson needs another team member")
		}
		if req.StartAt.IsZero() {
			return nil, invalidInput("start time is required")
		}
		if req.DurationMinutes < minLessonMinutes || req.DurationMinutes > maxLessonMinutes {
			return nil, invalidInput("duration must be between 5 and 480 minutes")
		}
		note, err := optionalText(req.Note, "note", maxNoteLength)
		if err != nil {
			return nil, err
		}

		lesson, err := s.store.CreateLessonRequest(ctx, c.Actor(), store.CreateLessonParams{
			CounterpartUserID: req.CounterpartUserID,
			StartAt:           req.StartAt,
			DurationMinutes:   req.DurationMinutes,
			Note:              note,
		})
		if err != nil {
			return nil, err
		}
		s.emit(ctx, teamEvent(c, events.LessonRequested, "lesson", lesson.ID, map[string]any{
			"coach_user_id":  lesson.CoachUserID,
			"player_user_id": lesson.PlayerUserID,
		}))
		return lesson, nil
	})
}

func (s *LessonService) Cancel(ctx context.Context, lessonID uuid.UUID, note *string) (*models.Lesson, error) {
	return run(&s.base, ctx, store.OpCancelLesson, func(ctx context.Context) (*models.Lesson, error) {
		c, err := s.caller(ctx)
		if err != nil {
			return nil, err
		}
		note, err := optionalText(note, "note", maxNoteLength)
		if err != nil {
			return nil, err
		}

		lesson, err := s.store.CancelLesson(ctx, c.Actor(), lessonID, note)
		if err != nil {
			return nil, err
		}
		s.emit(ctx, teamEvent(c, events.LessonCancelled, "lesson", lesson.ID, map[string]any{
			"has_note": note != nil,
		}))
		return lesson, nil
	})
}

func (s *LessonService) RespondToInvite(ctx context.Context, lessonID uuid.UUID, accept bool) (*models.Lesson, error) {
	return run(&s.base, ctx, store.OpRespondToLessonInvite, func(ctx context.Context) (*models.Lesson, error) {
		c, err := s.caller(ctx, models.RolePlayer)
		if err != nil {
			return nil, err
		}

		lesson, err := s.store.RespondToLessonInvite(ctx, c.Actor(), lessonID, accept)
		if err != nil {
			return nil, err
		}
		eventType := events.LessonInviteDeclined
		if accept {
			eventType = events.LessonInviteAccepted
		}
		s.emit(ctx, teamEvent(c, eventType, "lesson", lesson.ID, nil))
		return lesson, nil
	})
}

// SetParticipantPresence records attendance. The lesson's status is left
// untouched.
func (s *LessonService) SetParticipantPresence(ctx context.Context, lessonID, playerUserID uuid.UUID, present bool) (*models.LessonParticipant, error) {
	return run(&s.base, ctx, store.OpSetLessonParticipant, func(ctx context.Context) (*models.LessonParticipant, error) {
		c, err := s.caller(ctx, models.RoleCoach)
		if err != nil {
			return nil, err
		}
		if playerUserID == uuid.Nil {
			return nil, invalidInput("player is required")
		}

		p, err := s.store.SetLessonParticipant(ctx, c.Actor(), lessonID, playerUserID, present)
		if err != nil {
			return nil, err
		}
		s.emit(ctx, teamEvent(c, events.LessonAttendanceSet, "lesson", lessonID, map[string]any{
			"player_user_id": playerUserID,
			"present":        present,
		}))
		return p, nil
	})
}
