package testutil

import (
	"context"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockLessonService mocks the LessonService
type MockLessonService struct {
	mock.Mock
}

func (m *MockLessonService) Authorize(ctx context.Context, roles ...models.Role) error {
	args := m.Called(ctx, roles)
	return args.Error(0)
}

func (m *MockLessonService) Request(ctx context.Context, req services.LessonRequest) (*models.Lesson, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonService) Cancel(ctx context.Context, lessonID uuid.UUID, note *string) (*models.Lesson, error) {
	args := m.Called(ctx, lessonID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonService) RespondToInvite(ctx context.Context, lessonID uuid.UUID, accept bool) (*models.Lesson, error) {
	args := m.Called(ctx, lessonID, accept)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonService) SetParticipantPresence(ctx context.Context, lessonID, playerUserID uuid.UUID, present bool) (*models.LessonParticipant, error) {
	args := m.Called(ctx, lessonID, playerUserID, present)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LessonParticipant), args.Error(1)
}

// MockProgramService mocks the ProgramService
type MockProgramService struct {
	mock.Mock
}

func (m *MockProgramService) Authorize(ctx context.Context, roles ...models.Role) error {
	args := m.Called(ctx, roles)
	return args.Error(0)
}

func (m *MockProgramService) Enroll(ctx context.Context, templateID, playerUserID uuid.UUID, startAt time.Time) (*models.Enrollment, error) {
	args := m.Called(ctx, templateID, playerUserID, startAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func (m *MockProgramService) SetEnrollmentStatus(ctx context.Context, enrollmentID uuid.UUID, status models.EnrollmentStatus) (*models.Enrollment, error) {
	args := m.Called(ctx, enrollmentID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func (m *MockProgramService) CompleteAssignment(ctx context.Context, assignmentID uuid.UUID) (*models.AssignmentCompletion, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssignmentCompletion), args.Error(1)
}

func (m *MockProgramService) MarkSubmissionReviewed(ctx context.Context, submissionID uuid.UUID, note *string) (*models.Submission, error) {
	args := m.Called(ctx, submissionID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockProgramService) CreateFocus(ctx context.Context, in services.FocusInput) (*models.Focus, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Focus), args.Error(1)
}

func (m *MockProgramService) DeleteTemplateAssignment(ctx context.Context, templateID, assignmentID uuid.UUID) error {
	args := m.Called(ctx, templateID, assignmentID)
	return args.Error(0)
}

func (m *MockProgramService) DeleteDrillMedia(ctx context.Context, mediaID uuid.UUID) error {
	args := m.Called(ctx, mediaID)
	return args.Error(0)
}

// MockRosterService mocks the RosterService
type MockRosterService struct {
	mock.Mock
}

func (m *MockRosterService) Authorize(ctx context.Context, roles ...models.Role) error {
	args := m.Called(ctx, roles)
	return args.Error(0)
}

func (m *MockRosterService) RotateAccessCode(ctx context.Context) (*models.AccessCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessCode), args.Error(1)
}

func (m *MockRosterService) PreviewTeamFromAccessCode(ctx context.Context, code string) (*models.TeamPreview, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamPreview), args.Error(1)
}

func (m *MockRosterService) JoinTeamWithAccessCode(ctx context.Context, code, displayName string) (*models.Profile, error) {
	args := m.Called(ctx, code, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockRosterService) IssueClaimToken(ctx context.Context, playerID uuid.UUID, ttl time.Duration) (*models.ClaimToken, error) {
	args := m.Called(ctx, playerID, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClaimToken), args.Error(1)
}

func (m *MockRosterService) PreviewClaim(ctx context.Context, token string) (*services.ClaimPreview, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ClaimPreview), args.Error(1)
}

func (m *MockRosterService) ClaimAccount(ctx context.Context, token string) (*models.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockRosterService) SetPlayerActive(ctx context.Context, userID uuid.UUID, active bool) (*models.Profile, error) {
	args := m.Called(ctx, userID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// MockContentService mocks the ContentService
type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) Authorize(ctx context.Context, roles ...models.Role) error {
	args := m.Called(ctx, roles)
	return args.Error(0)
}

func (m *MockContentService) SoftDelete(ctx context.Context, kind models.ContentKind, id uuid.UUID) (*models.ContentItem, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentService) Restore(ctx context.Context, kind models.ContentKind, id uuid.UUID) (*models.ContentItem, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentService) TouchSeen(ctx context.Context, videoID uuid.UUID) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

func (m *MockContentService) TouchLastSeenFeed(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
