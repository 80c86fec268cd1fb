package dto

import (
	"time"

	"github.com/google/uuid"
)

type EnrollRequest struct {
	TemplateID   uuid.UUID  `json:"template_id"`
	PlayerUserID uuid.UUID  `json:"player_user_id"`
	StartAt      *time.Time `json:"start_at,omitempty"`
}

type SetEnrollmentStatusRequest struct {
	Status string `json:"status"`
}

type ReviewSubmissionRequest struct {
	Note *string `json:"note,omitempty"`
}

type CreateFocusRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Cues        []string `json:"cues"`
}
