package dto

import (
	"time"

	"github.com/google/uuid"
)

type RequestLessonRequest struct {
	CounterpartUserID uuid.UUID `json:"counterpart_user_id"`
	StartAt           time.Time `json:"start_at"`
	DurationMinutes   int       `json:"duration_minutes"`
	Note              *string   `json:"note,omitempty"`
}

type CancelLessonRequest struct {
	Note *string `json:"note,omitempty"`
}

type RespondInviteRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

type SetParticipantRequest struct {
	Present *bool `json:"present" validate:"required"`
}
