package models

import (
	"time"

	"github.com/google/uuid"
)

type LessonStatus string

const (
	LessonPending   LessonStatus = "pending"
	LessonAccepted  LessonStatus = "accepted"
	LessonDeclined  LessonStatus = "declined"
	LessonCancelled LessonStatus = "cancelled"
)

type Lesson struct {
	ID              uuid.UUID    `json:"id"`
	TeamID          uuid.UUID    `json:"team_id"`
	CoachUserID     uuid.UUID    `json:"coach_user_id"`
	PlayerUserID    uuid.UUID    `json:"player_user_id"`
	CreatedBy       uuid.UUID    `json:"created_by"`
	Status          LessonStatus `json:"status"`
	StartAt         time.Time    `json:"start_at"`
	DurationMinutes int          `json:"duration_minutes"`
	Note            *string      `json:"note,omitempty"`
	CancelledBy     *uuid.UUID   `json:"cancelled_by,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// IsInvitedPlayer reports whether userID is the player a coach invited.
// Lessons a player requested have no invitee to respond.
func (l *Lesson) IsInvitedPlayer(userID uuid.UUID) bool {
	return l.PlayerUserID == userID && l.CreatedBy != userID
}

func (l *Lesson) IsParty(userID uuid.UUID) bool {
	return l.CoachUserID == userID || l.PlayerUserID == userID
}

type LessonParticipant struct {
	LessonID     uuid.UUID `json:"lesson_id"`
	PlayerUserID uuid.UUID `json:"player_user_id"`
	Present      bool      `json:"present"`
	UpdatedAt    time.Time `json:"updated_at"`
}
