package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCoach  Role = "coach"
	RolePlayer Role = "player"
)

func (r Role) Valid() bool {
	return r == RoleCoach || r == RolePlayer
}

type Team struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CoachUserID uuid.UUID `json:"coach_user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Profile is a user's membership of exactly one team. Unclaimed player
// records have no UserID until a claim token is redeemed.
type Profile struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	TeamID      uuid.UUID  `json:"team_id"`
	Role        Role       `json:"role"`
	DisplayName string     `json:"display_name"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (p *Profile) IsClaimed() bool {
	return p.UserID != nil
}

type AccessCode struct {
	TeamID    uuid.UUID `json:"team_id"`
	Code      string    `json:"code"`
	RotatedAt time.Time `json:"rotated_at"`
}

type TeamPreview struct {
	TeamName  string `json:"team_name"`
	CoachName string `json:"coach_name"`
}

type ClaimToken struct {
	Token           string     `json:"-"`
	PlayerID        uuid.UUID  `json:"player_id"`
	TeamID          uuid.UUID  `json:"team_id"`
	ExpiresAt       time.Time  `json:"expires_at"`
	ClaimedAt       *time.Time `json:"claimed_at,omitempty"`
	ClaimedByUserID *uuid.UUID `json:"claimed_by_user_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (t *ClaimToken) IsClaimed() bool {
	return t.ClaimedAt != nil
}

func (t *ClaimToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsValid reports whether the token can still be redeemed. A claimed token
// stays invalid regardless of its expiry.
func (t *ClaimToken) IsValid(now time.Time) bool {
	return !t.IsClaimed() && !t.IsExpired(now)
}

// ClaimInfo joins a claim token with the display names shown on the
// confirmation page.
type ClaimInfo struct {
	Token      ClaimToken
	PlayerName string
	TeamName   string
	CoachName  string
}
