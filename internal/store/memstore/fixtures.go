package memstore

import (
	"context"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/google/uuid"
)

// The methods below seed and inspect state outside the workflow operations.
// They back the roster seed loader and the workflow tests.

// EnsureTeam returns the team coached by coachUserID, creating the team and
// the coach profile if needed.
func (s *Store) EnsureTeam(ctx context.Context, name string, coachUserID uuid.UUID, coachName string) (*models.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.teams {
		if t.CoachUserID == coachUserID {
			cp := *t
			return &cp, nil
		}
	}
	team := s.addTeam(name, coachUserID, coachName)
	cp := *team
	return &cp, nil
}

// ImportPlayer adds a player profile; a nil userID leaves it unclaimed.
func (s *Store) ImportPlayer(ctx context.Context, teamID uuid.UUID, name string, userID *uuid.UUID) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyProfile(s.addProfile(teamID, userID, models.RolePlayer, name)), nil
}

func (s *Store) AddTeam(name string, coachUserID uuid.UUID, coachName string) (*models.Team, *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team := s.addTeam(name, coachUserID, coachName)
	return team, copyProfile(s.profileByUser(coachUserID))
}

func (s *Store) AddCoach(teamID, userID uuid.UUID, name string) *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProfile(s.addProfile(teamID, &userID, models.RoleCoach, name))
}

func (s *Store) AddPlayer(teamID, userID uuid.UUID, name string) *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProfile(s.addProfile(teamID, &userID, models.RolePlayer, name))
}

func (s *Store) AddUnclaimedPlayer(teamID uuid.UUID, name string) *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProfile(s.addProfile(teamID, nil, models.RolePlayer, name))
}

func (s *Store) AddTemplate(teamID, coachUserID uuid.UUID, title string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.templates[id] = &template{teamID: teamID, coachUserID: coachUserID, title: title}
	return id
}

func (s *Store) AddAssignment(templateID uuid.UUID, dayRef string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.assignments[id] = &assignment{templateID: templateID, dayRef: dayRef}
	return id
}

func (s *Store) AddDrillMedia(assignmentID uuid.UUID) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.media[id] = assignmentID
	return id
}

func (s *Store) AddSubmission(enrollmentID uuid.UUID, mediaRef string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.submissions[id] = &models.Submission{
		ID:           id,
		EnrollmentID: enrollmentID,
		MediaRef:     mediaRef,
		CreatedAt:    s.now(),
	}
	return id
}

func (s *Store) AddContent(kind models.ContentKind, teamID, ownerUserID uuid.UUID) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.content[contentKey{kind: kind, id: id}] = &models.ContentItem{
		ID:          id,
		Kind:        kind,
		TeamID:      teamID,
		OwnerUserID: ownerUserID,
	}
	return id
}

func (s *Store) Lesson(id uuid.UUID) (*models.Lesson, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lessons[id]
	if !ok {
		return nil, false
	}
	return copyLesson(l), true
}

func (s *Store) Participant(lessonID, playerUserID uuid.UUID) (*models.LessonParticipant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[participantKey{lessonID: lessonID, playerUserID: playerUserID}]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

func (s *Store) ParticipantCount(lessonID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key := range s.participants {
		if key.lessonID == lessonID {
			n++
		}
	}
	return n
}

func (s *Store) Enrollment(id uuid.UUID) (*models.Enrollment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.enrollments[id]
	if !ok {
		return nil, false
	}
	cp := *e
	return &cp, true
}

func (s *Store) CompletionCount(assignmentID, playerUserID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.completions[completionKey{assignmentID: assignmentID, playerUserID: playerUserID}]; ok {
		return 1
	}
	return 0
}

func (s *Store) Submission(id uuid.UUID) (*models.Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, false
	}
	cp := *sub
	return &cp, true
}

func (s *Store) HasAssignment(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.assignments[id]
	return ok
}

func (s *Store) HasDrillMedia(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.media[id]
	return ok
}

func (s *Store) AccessCode(teamID uuid.UUID) (*models.AccessCode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ac, ok := s.accessCodes[teamID]
	if !ok {
		return nil, false
	}
	cp := *ac
	return &cp, true
}

func (s *Store) ActiveAccessCodes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accessCodes)
}

func (s *Store) Profile(id uuid.UUID) (*models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, false
	}
	return copyProfile(p), true
}

func (s *Store) ClaimToken(token string) (*models.ClaimToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ct, ok := s.claims[token]
	if !ok {
		return nil, false
	}
	return copyClaim(ct), true
}

func (s *Store) Content(kind models.ContentKind, id uuid.UUID) (*models.ContentItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.content[contentKey{kind: kind, id: id}]
	if !ok {
		return nil, false
	}
	return copyContent(item), true
}

func (s *Store) VideoSeenAt(videoID, userID uuid.UUID) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.videoViews[viewKey{videoID: videoID, userID: userID}]
	return at, ok
}

func (s *Store) FeedSeenAt(userID uuid.UUID) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.feedSeen[userID]
	return at, ok
}

// addTeam must be called with s.mu held.
func (s *Store) addTeam(name string, coachUserID uuid.UUID, coachName string) *models.Team {
	team := &models.Team{
		ID:          uuid.New(),
		Name:        name,
		CoachUserID: coachUserID,
		CreatedAt:   s.now(),
	}
	s.teams[team.ID] = team
	s.addProfile(team.ID, &coachUserID, models.RoleCoach, coachName)
	return team
}

// addProfile must be called with s.mu held.
func (s *Store) addProfile(teamID uuid.UUID, userID *uuid.UUID, role models.Role, name string) *models.Profile {
	p := &models.Profile{
		ID:          uuid.New(),
		TeamID:      teamID,
		Role:        role,
		DisplayName: name,
		IsActive:    true,
		CreatedAt:   s.now(),
	}
	if userID != nil {
		id := *userID
		p.UserID = &id
	}
	s.profiles[p.ID] = p
	return p
}
