package handlers

import (
	"context"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/services"
	"github.com/google/uuid"
)

// LessonServiceInterface defines the methods used by handlers from LessonService
type LessonServiceInterface interface {
	Authorizer
	Request(ctx context.Context, req services.LessonRequest) (*models.Lesson, error)
	Cancel(ctx context.Context, lessonID uuid.UUID, note *string) (*models.Lesson, error)
	RespondToInvite(ctx context.Context, lessonID uuid.UUID, accept bool) (*models.Lesson, error)
	SetParticipantPresence(ctx context.Context, lessonID, playerUserID uuid.UUID, present bool) (*models.LessonParticipant, error)
}

// ProgramServiceInterface defines the methods used by handlers from ProgramService
type ProgramServiceInterface interface {
	Authorizer
	Enroll(ctx context.Context, templateID, playerUserID uuid.UUID, startAt time.Time) (*models.Enrollment, error)
	SetEnrollmentStatus(ctx context.Context, enrollmentID uuid.UUID, status models.EnrollmentStatus) (*models.Enrollment, error)
	CompleteAssignment(ctx context.Context, assignmentID uuid.UUID) (*models.AssignmentCompletion, error)
	MarkSubmissionReviewed(ctx context.Context, submissionID uuid.UUID, note *string) (*models.Submission, error)
	CreateFocus(ctx context.Context, in services.FocusInput) (*models.Focus, error)
	DeleteTemplateAssignment(ctx context.Context, templateID, assignmentID uuid.UUID) error
	DeleteDrillMedia(ctx context.Context, mediaID uuid.UUID) error
}

// RosterServiceInterface defines the methods used by handlers from RosterService
type RosterServiceInterface interface {
	Authorizer
	RotateAccessCode(ctx context.Context) (*models.AccessCode, error)
	PreviewTeamFromAccessCode(ctx context.Context, code string) (*models.TeamPreview, error)
	JoinTeamWithAccessCode(ctx context.Context, code, displayName string) (*models.Profile, error)
	IssueClaimToken(ctx context.Context, playerID uuid.UUID, ttl time.Duration) (*models.ClaimToken, error)
	PreviewClaim(ctx context.Context, token string) (*services.ClaimPreview, error)
	ClaimAccount(ctx context.Context, token string) (*models.Profile, error)
	SetPlayerActive(ctx context.Context, userID uuid.UUID, active bool) (*models.Profile, error)
}

// ContentServiceInterface defines the methods used by handlers from ContentService
type ContentServiceInterface interface {
	Authorizer
	SoftDelete(ctx context.Context, kind models.ContentKind, id uuid.UUID) (*models.ContentItem, error)
	Restore(ctx context.Context, kind models.ContentKind, id uuid.UUID) (*models.ContentItem, error)
	TouchSeen(ctx context.Context, videoID uuid.UUID) error
	TouchLastSeenFeed(ctx context.Context) error
}

var (
	_ LessonServiceInterface  = (*services.LessonService)(nil)
	_ ProgramServiceInterface = (*services.ProgramService)(nil)
	_ RosterServiceInterface  = (*services.RosterService)(nil)
	_ ContentServiceInterface = (*services.ContentService)(nil)
)
