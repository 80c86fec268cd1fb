// Package events records audit events for workflow transitions.
package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	LessonRequested        = "lesson_requested"
	LessonCancelled        = "lesson_cancelled"
	LessonInviteAccepted   = "lesson_invite_accepted"
	LessonInviteDeclined   = "lesson_invite_declined"
	LessonAttendanceSet    = "lesson_attendance_set"
	ProgramEnrolled        = "program_enrolled"
	EnrollmentStatusSet    = "enrollment_status_set"
	AssignmentCompleted    = "assignment_completed"
	SubmissionReviewed     = "submission_reviewed"
	FocusCreated           = "focus_created"
	TemplateAssignmentGone = "template_assignment_deleted"
	DrillMediaDeleted      = "drill_media_deleted"
	AccessCodeRotated      = "access_code_rotated"
	TeamJoined             = "team_joined"
	ClaimTokenIssued       = "claim_token_issued"
	AccountClaimed         = "account_claimed"
	PlayerActiveSet        = "player_active_set"
	ContentDeleted         = "content_deleted"
	ContentRestored        = "content_restored"
)

type Event struct {
	TeamID      *uuid.UUID
	ActorUserID *uuid.UUID
	EventType   string
	SubjectType string
	SubjectID   uuid.UUID
	Metadata    map[string]any
	OccurredAt  time.Time
}

// Sink persists events. Recording is best effort: callers log failures and
// never undo the transition that produced the event.
type Sink interface {
	Record(ctx context.Context, e Event) error
}

type discard struct{}

func (discard) Record(context.Context, Event) error { return nil }

// Discard drops every event.
func Discard() Sink { return discard{} }

// LogSink writes events to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Record(ctx context.Context, e Event) error {
	attrs := []any{
		"event_type", e.EventType,
		"subject_type", e.SubjectType,
		"subject_id", e.SubjectID,
	}
	if e.TeamID != nil {
		attrs = append(attrs, "team_id", *e.TeamID)
	}
	if e.ActorUserID != nil {
		attrs = append(attrs, "actor_user_id", *e.ActorUserID)
	}
	if len(e.Metadata) > 0 {
		attrs = append(attrs, "metadata", e.Metadata)
	}
	s.logger.InfoContext(ctx, "audit event", attrs...)
	return nil
}

type multi []Sink

// Multi fans an event out to every sink and joins their errors.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

func (m multi) Record(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
