package memstore

import (
	"context"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
)

func (s *Store) CreateLessonRequest(ctx context.Context, actor store.Actor, params store.CreateLessonParams) (*models.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	counterpart := s.profileByUser(params.CounterpartUserID)
	if counterpart == nil || counterpart.TeamID != actor.TeamID {
		return nil, store.NotFound(store.OpCreateLessonRequest, "counterpart not found")
	}
	if counterpart.Role == actor.Role {
		return nil, store.InvalidState(store.OpCreateLessonRequest, "a lesson pairs a coach with a player")
	}
	if !counterpart.IsActive {
		return nil, store.InvalidState(store.OpCreateLessonRequest, "counterpart is inactive")
	}

	coachID, playerID := actor.UserID, params.CounterpartUserID
	if actor.Role == models.RolePlayer {
		coachID, playerID = playerID, coachID
	}

	now := s.now()
	lesson := &models.Lesson{
		ID:              uuid.New(),
		TeamID:          actor.TeamID,
		CoachUserID:     coachID,
		PlayerUserID:    playerID,
		CreatedBy:       actor.UserID,
		Status:          models.LessonPending,
		StartAt:         params.StartAt,
		DurationMinutes: params.DurationMinutes,
		Note:            params.Note,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.lessons[lesson.ID] = lesson
	return copyLesson(lesson), nil
}

func (s *Store) CancelLesson(ctx context.Context, actor store.Actor, lessonID uuid.UUID, note *string) (*models.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lesson, ok := s.lessons[lessonID]
	if !ok || lesson.TeamID != actor.TeamID {
		return nil, store.NotFound(store.OpCancelLesson, "lesson not found")
	}
	if !lesson.IsParty(actor.UserID) {
		return nil, store.Forbidden(store.OpCancelLesson, "only the lesson's coach or player can cancel it")
	}
	if lesson.Status == models.LessonCancelled {
		return nil, store.InvalidState(store.OpCancelLesson, "lesson already cancelled")
	}

	lesson.Status = models.LessonCancelled
	if note != nil {
		lesson.Note = note
	}
	by := actor.UserID
	lesson.CancelledBy = &by
	lesson.UpdatedAt = s.now()
	return copyLesson(lesson), nil
}

func (s *Store) RespondToLessonInvite(ctx context.Context, actor store.Actor, lessonID uuid.UUID, accept bool) (*models.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lesson, ok := s.lessons[lessonID]
	if !ok || lesson.TeamID != actor.TeamID {
		return nil, store.NotFound(store.OpRespondToLessonInvite, "lesson not found")
	}
	if !lesson.IsInvitedPlayer(actor.UserID) {
		return nil, store.Forbidden(store.OpRespondToLessonInvite, "only the invited player can respond")
	}
	if lesson.Status != models.LessonPending {
		return nil, store.InvalidState(store.OpRespondToLessonInvite, "invite is no longer pending")
	}

	lesson.Status = models.LessonDeclined
	if accept {
		lesson.Status = models.LessonAccepted
	}
	lesson.UpdatedAt = s.now()
	return copyLesson(lesson), nil
}

func (s *Store) SetLessonParticipant(ctx context.Context, actor store.Actor, lessonID, playerUserID uuid.UUID, present bool) (*models.LessonParticipant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lesson, ok := s.lessons[lessonID]
	if !ok || lesson.TeamID != actor.TeamID {
		return nil, store.NotFound(store.OpSetLessonParticipant, "lesson not found")
	}
	if lesson.CoachUserID != actor.UserID {
		return nil, store.Forbidden(store.OpSetLessonParticipant, "only the lesson's coach can record attendance")
	}
	if s.teamMember(actor.TeamID, playerUserID, models.RolePlayer) == nil {
		return nil, store.NotFound(store.OpSetLessonParticipant, "player not found")
	}

	key := participantKey{lessonID: lessonID, playerUserID: playerUserID}
	p, ok := s.participants[key]
	if !ok {
		p = &models.LessonParticipant{LessonID: lessonID, PlayerUserID: playerUserID}
		s.participants[key] = p
	}
	p.Present = present
	p.UpdatedAt = s.now()
	cp := *p
	return &cp, nil
}

func copyLesson(l *models.Lesson) *models.Lesson {
	cp := *l
	return &cp
}
