package memstore

import (
	"context"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
)

func (s *Store) EnrollPlayer(ctx context.Context, actor store.Actor, templateID, playerUserID uuid.UUID, startAt time.Time) (*models.Enrollment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tpl, ok := s.templates[templateID]
	if !ok || tpl.teamID != actor.TeamID {
		return nil, store.NotFound(store.OpEnrollPlayer, "program template not found")
	}
	if s.teamMember(actor.TeamID, playerUserID, models.RolePlayer) == nil {
		return nil, store.NotFound(store.OpEnrollPlayer, "player not found")
	}
	for _, e := range s.enrollments {
		if e.TemplateID == templateID && e.PlayerUserID == playerUserID && e.Status != models.EnrollmentCompleted {
			return nil, store.InvalidState(store.OpEnrollPlayer, "player already enrolled in this program")
		}
	}

	now := s.now()
	e := &models.Enrollment{
		ID:           uuid.New(),
		TemplateID:   templateID,
		PlayerUserID: playerUserID,
		Status:       models.EnrollmentActive,
		StartAt:      startAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.enrollments[e.ID] = e
	cp := *e
	return &cp, nil
}

func (s *Store) SetEnrollmentStatus(ctx context.Context, actor store.Actor, enrollmentID uuid.UUID, status models.EnrollmentStatus) (*models.Enrollment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.enrollments[enrollmentID]
	if !ok || !s.templateInTeam(e.TemplateID, actor.TeamID) {
		return nil, store.InvalidState(store.OpSetEnrollmentStatus, "enrollment does not belong to your team")
	}
	e.Status = status
	e.UpdatedAt = s.now()
	cp := *e
	return &cp, nil
}

func (s *Store) CompleteAssignment(ctx context.Context, actor store.Actor, assignmentID uuid.UUID, at time.Time) (*models.AssignmentCompletion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assignments[assignmentID]
	if !ok || !s.templateInTeam(a.templateID, actor.TeamID) {
		return nil, store.NotFound(store.OpCompleteAssignment, "assignment not found")
	}
	if !s.enrolled(a.templateID, actor.UserID) {
		return nil, store.Forbidden(store.OpCompleteAssignment, "not enrolled in this program")
	}

	key := completionKey{assignmentID: assignmentID, playerUserID: actor.UserID}
	if c, ok := s.completions[key]; ok {
		cp := *c
		cp.AlreadyCompleted = true
		return &cp, nil
	}
	c := &models.AssignmentCompletion{
		AssignmentID: assignmentID,
		PlayerUserID: actor.UserID,
		CompletedAt:  at,
	}
	s.completions[key] = c
	cp := *c
	return &cp, nil
}

func (s *Store) MarkSubmissionReviewed(ctx context.Context, actor store.Actor, submissionID uuid.UUID, note *string, at time.Time) (*models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[submissionID]
	if !ok {
		return nil, store.NotFound(store.OpMarkSubmissionReviewed, "submission not found")
	}
	e, ok := s.enrollments[sub.EnrollmentID]
	if !ok || !s.templateInTeam(e.TemplateID, actor.TeamID) {
		return nil, store.NotFound(store.OpMarkSubmissionReviewed, "submission not found")
	}

	if sub.ReviewedAt != nil {
		cp := *sub
		cp.AlreadyReviewed = true
		return &cp, nil
	}
	reviewedAt := at
	by := actor.UserID
	sub.ReviewedAt = &reviewedAt
	sub.ReviewNote = note
	sub.ReviewedBy = &by
	cp := *sub
	return &cp, nil
}

func (s *Store) CreateFocus(ctx context.Context, actor store.Actor, params store.CreateFocusParams) (*models.Focus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f := &models.Focus{
		ID:          uuid.New(),
		TeamID:      actor.TeamID,
		Name:        params.Name,
		Description: params.Description,
		Cues:        append([]string(nil), params.Cues...),
		CreatedBy:   actor.UserID,
		CreatedAt:   s.now(),
	}
	s.focuses[f.ID] = f
	cp := *f
	cp.Cues = append([]string(nil), f.Cues...)
	return &cp, nil
}

func (s *Store) DeleteTemplateAssignment(ctx context.Context, actor store.Actor, assignmentID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assignments[assignmentID]
	if !ok || !s.templateInTeam(a.templateID, actor.TeamID) {
		return store.NotFound(store.OpDeleteTemplateAssignment, "assignment not found")
	}
	delete(s.assignments, assignmentID)
	for mediaID, owner := range s.media {
		if owner == assignmentID {
			delete(s.media, mediaID)
		}
	}
	return nil
}

func (s *Store) DeleteDrillMedia(ctx context.Context, actor store.Actor, mediaID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	assignmentID, ok := s.media[mediaID]
	if !ok {
		return store.NotFound(store.OpDeleteDrillMedia, "media not found")
	}
	a, ok := s.assignments[assignmentID]
	if !ok || !s.templateInTeam(a.templateID, actor.TeamID) {
		return store.NotFound(store.OpDeleteDrillMedia, "media not found")
	}
	delete(s.media, mediaID)
	return nil
}

// templateInTeam must be called with s.mu held.
func (s *Store) templateInTeam(templateID, teamID uuid.UUID) bool {
	tpl, ok := s.templates[templateID]
	return ok && tpl.teamID == teamID
}

// enrolled must be called with s.mu held.
func (s *Store) enrolled(templateID, playerUserID uuid.UUID) bool {
	for _, e := range s.enrollments {
		if e.TemplateID == templateID && e.PlayerUserID == playerUserID {
			return true
		}
	}
	return false
}
