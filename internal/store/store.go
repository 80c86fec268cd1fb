// Package store defines the transactional store the workflows run against.
//
// Every method is one named atomic operation: it either applies the whole
// transition, including its consistency checks, or rejects it with an
// *Error. Any other error is an infrastructure failure.
package store

import (
	"context"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/google/uuid"
)

// Operation names, shared by both store implementations, logs and traces.
const (
	OpGetCallerProfile          = "get_caller_profile"
	OpCreateLessonRequest       = "create_lesson_request"
	OpCancelLesson              = "cancel_lesson"
	OpRespondToLessonInvite     = "respond_to_lesson_invite"
	OpSetLessonParticipant      = "coach_set_lesson_participant"
	OpEnrollPlayer              = "enroll_player_in_program"
	OpSetEnrollmentStatus       = "set_enrollment_status"
	OpCompleteAssignment        = "complete_program_assignment"
	OpMarkSubmissionReviewed    = "mark_program_submission_reviewed"
	OpCreateFocus               = "create_program_focus"
	OpDeleteTemplateAssignment  = "delete_program_template_day_assignment"
	OpDeleteDrillMedia          = "delete_program_drill_media"
	OpRotateAccessCode          = "rotate_team_access_code"
	OpPreviewTeamFromAccessCode = "preview_team_from_access_code"
	OpJoinTeamWithAccessCode    = "join_team_with_access_code"
	OpCreateClaimToken          = "create_claim_token"
	OpGetClaimInfo              = "get_claim_info"
	OpClaimPlayerAccount        = "claim_player_account"
	OpSetPlayerActive           = "set_player_active"
	OpSoftDeleteContent         = "soft_delete_content"
	OpRestoreContent            = "restore_content"
	OpTouchVideoSeen            = "touch_video_seen"
	OpTouchLastSeenFeed         = "touch_last_seen_feed"
)

// Actor is the server-resolved identity an operation runs as. It is built
// from the caller's persisted profile, never from request input.
type Actor struct {
	UserID uuid.UUID
	TeamID uuid.UUID
	Role   models.Role
}

// MayModify reports whether the actor may delete or restore content owned by
// ownerUserID: its owner, or any coach.
func (a Actor) MayModify(ownerUserID uuid.UUID) bool {
	return a.UserID == ownerUserID || a.Role == models.RoleCoach
}

type CreateLessonParams struct {
	CounterpartUserID uuid.UUID
	StartAt           time.Time
	DurationMinutes   int
	Note              *string
}

type CreateFocusParams struct {
	Name        string
	Description *string
	Cues        []string
}

type Store interface {
	ProfileStore
	LessonStore
	ProgramStore
	RosterStore
	ContentStore
}

type ProfileStore interface {
	// GetCallerProfile returns the profile bound to userID, or a NotFound
	// error when the user has not joined a team.
	GetCallerProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

type LessonStore interface {
	CreateLessonRequest(ctx context.Context, actor Actor, params CreateLessonParams) (*models.Lesson, error)
	CancelLesson(ctx context.Context, actor Actor, lessonID uuid.UUID, note *string) (*models.Lesson, error)
	RespondToLessonInvite(ctx context.Context, actor Actor, lessonID uuid.UUID, accept bool) (*models.Lesson, error)
	SetLessonParticipant(ctx context.Context, actor Actor, lessonID, playerUserID uuid.UUID, present bool) (*models.LessonParticipant, error)
}

type ProgramStore interface {
	EnrollPlayer(ctx context.Context, actor Actor, templateID, playerUserID uuid.UUID, startAt time.Time) (*models.Enrollment, error)
	SetEnrollmentStatus(ctx context.Context, actor Actor, enrollmentID uuid.UUID, status models.EnrollmentStatus) (*models.Enrollment, error)
	CompleteAssignment(ctx context.Context, actor Actor, assignmentID uuid.UUID, at time.Time) (*models.AssignmentCompletion, error)
	// MarkSubmissionReviewed applies first-review-wins: once reviewed, the
	// stored review is returned unchanged with AlreadyReviewed set.
	MarkSubmissionReviewed(ctx context.Context, actor Actor, submissionID uuid.UUID, note *string, at time.Time) (*models.Submission, error)
	CreateFocus(ctx context.Context, actor Actor, params CreateFocusParams) (*models.Focus, error)
	DeleteTemplateAssignment(ctx context.Context, actor Actor, assignmentID uuid.UUID) error
	DeleteDrillMedia(ctx context.Context, actor Actor, mediaID uuid.UUID) error
}

type RosterStore interface {
	RotateAccessCode(ctx context.Context, actor Actor, code string, at time.Time) (*models.AccessCode, error)
	PreviewTeamFromAccessCode(ctx context.Context, code string) (*models.TeamPreview, error)
	JoinTeamWithAccessCode(ctx context.Context, userID uuid.UUID, code, displayName string) (*models.Profile, error)
	CreateClaimToken(ctx context.Context, actor Actor, playerID uuid.UUID, token string, expiresAt time.Time) (*models.ClaimToken, error)
	GetClaimInfo(ctx context.Context, token string) (*models.ClaimInfo, error)
	ClaimPlayerAccount(ctx context.Context, userID uuid.UUID, token string, at time.Time) (*models.Profile, error)
	SetPlayerActive(ctx context.Context, actor Actor, userID uuid.UUID, active bool) (*models.Profile, error)
}

type ContentStore interface {
	SoftDeleteContent(ctx context.Context, actor Actor, kind models.ContentKind, id uuid.UUID, at time.Time) (*models.ContentItem, error)
	RestoreContent(ctx context.Context, actor Actor, kind models.ContentKind, id uuid.UUID) (*models.ContentItem, error)
	TouchVideoSeen(ctx context.Context, actor Actor, videoID uuid.UUID, at time.Time) error
	TouchLastSeenFeed(ctx context.Context, actor Actor, at time.Time) error
}
