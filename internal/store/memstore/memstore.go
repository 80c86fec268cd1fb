// Package memstore is an in-process implementation of store.Store. One
// mutex is held for the whole of each operation, which gives every
// operation the same all-or-nothing semantics as the Postgres store.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
)

type participantKey struct {
	lessonID     uuid.UUID
	playerUserID uuid.UUID
}

type completionKey struct {
	assignmentID uuid.UUID
	playerUserID uuid.UUID
}

type contentKey struct {
	kind models.ContentKind
	id   uuid.UUID
}

type viewKey struct {
	videoID uuid.UUID
	userID  uuid.UUID
}

type template struct {
	teamID      uuid.UUID
	coachUserID uuid.UUID
	title       string
}

type assignment struct {
	templateID uuid.UUID
	dayRef     string
}

type Store struct {
	mu  sync.Mutex
	now func() time.Time

	teams        map[uuid.UUID]*models.Team
	profiles     map[uuid.UUID]*models.Profile
	lessons      map[uuid.UUID]*models.Lesson
	participants map[participantKey]*models.LessonParticipant
	templates    map[uuid.UUID]*template
	assignments  map[uuid.UUID]*assignment
	media        map[uuid.UUID]uuid.UUID
	enrollments  map[uuid.UUID]*models.Enrollment
	completions  map[completionKey]*models.AssignmentCompletion
	submissions  map[uuid.UUID]*models.Submission
	focuses      map[uuid.UUID]*models.Focus
	accessCodes  map[uuid.UUID]*models.AccessCode
	claims       map[string]*models.ClaimToken
	content      map[contentKey]*models.ContentItem
	videoViews   map[viewKey]time.Time
	feedSeen     map[uuid.UUID]time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		now:          time.Now,
		teams:        make(map[uuid.UUID]*models.Team),
		profiles:     make(map[uuid.UUID]*models.Profile),
		lessons:      make(map[uuid.UUID]*models.Lesson),
		participants: make(map[participantKey]*models.LessonParticipant),
		templates:    make(map[uuid.UUID]*template),
		assignments:  make(map[uuid.UUID]*assignment),
		media:        make(map[uuid.UUID]uuid.UUID),
		enrollments:  make(map[uuid.UUID]*models.Enrollment),
		completions:  make(map[completionKey]*models.AssignmentCompletion),
		submissions:  make(map[uuid.UUID]*models.Submission),
		focuses:      make(map[uuid.UUID]*models.Focus),
		accessCodes:  make(map[uuid.UUID]*models.AccessCode),
		claims:       make(map[string]*models.ClaimToken),
		content:      make(map[contentKey]*models.ContentItem),
		videoViews:   make(map[viewKey]time.Time),
		feedSeen:     make(map[uuid.UUID]time.Time),
	}
}

// SetClock replaces the clock used for created/updated timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) GetCallerProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profileByUser(userID)
	if p == nil {
		return nil, store.NotFound(store.OpGetCallerProfile, "profile not found")
	}
	return copyProfile(p), nil
}

// profileByUser must be called with s.mu held.
func (s *Store) profileByUser(userID uuid.UUID) *models.Profile {
	for _, p := range s.profiles {
		if p.UserID != nil && *p.UserID == userID {
			return p
		}
	}
	return nil
}

// teamMember returns the claimed profile of userID in teamID with the given
// role. Must be called with s.mu held.
func (s *Store) teamMember(teamID, userID uuid.UUID, role models.Role) *models.Profile {
	p := s.profileByUser(userID)
	if p == nil || p.TeamID != teamID || p.Role != role {
		return nil
	}
	return p
}

func copyProfile(p *models.Profile) *models.Profile {
	cp := *p
	if p.UserID != nil {
		id := *p.UserID
		cp.UserID = &id
	}
	return &cp
}
