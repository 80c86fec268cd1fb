package models

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentPaused    EnrollmentStatus = "paused"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentActive, EnrollmentPaused, EnrollmentCompleted:
		return true
	}
	return false
}

type Enrollment struct {
	ID           uuid.UUID        `json:"id"`
	TemplateID   uuid.UUID        `json:"template_id"`
	PlayerUserID uuid.UUID        `json:"player_user_id"`
	Status       EnrollmentStatus `json:"status"`
	StartAt      time.Time        `json:"start_at"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type AssignmentCompletion struct {
	AssignmentID     uuid.UUID `json:"assignment_id"`
	PlayerUserID     uuid.UUID `json:"player_user_id"`
	CompletedAt      time.Time `json:"completed_at"`
	AlreadyCompleted bool      `json:"already_completed"`
}

type Submission struct {
	ID              uuid.UUID  `json:"id"`
	EnrollmentID    uuid.UUID  `json:"enrollment_id"`
	MediaRef        string     `json:"media_ref"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	ReviewNote      *string    `json:"review_note,omitempty"`
	ReviewedBy      *uuid.UUID `json:"reviewed_by,omitempty"`
	AlreadyReviewed bool       `json:"already_reviewed"`
	CreatedAt       time.Time  `json:"created_at"`
}

type Focus struct {
	ID          uuid.UUID `json:"id"`
	TeamID      uuid.UUID `json:"team_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Cues        []string  `json:"cues"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
