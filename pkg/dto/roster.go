package dto

import (
	"time"

	"github.com/google/uuid"
)

type JoinTeamRequest struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

type IssueClaimTokenRequest struct {
	TTLHours int `json:"ttl_hours,omitempty"`
}

type SetPlayerActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type ClaimTokenResponse struct {
	Token     string    `json:"token"`
	ClaimURL  string    `json:"claim_url"`
	PlayerID  uuid.UUID `json:"player_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ClaimPreviewResponse struct {
	PlayerName string    `json:"player_name"`
	TeamName   string    `json:"team_name"`
	CoachName  string    `json:"coach_name"`
	ExpiresAt  time.Time `json:"expires_at"`
	IsExpired  bool      `json:"is_expired"`
	IsClaimed  bool      `json:"is_claimed"`
	IsValid    bool      `json:"is_valid"`
}
