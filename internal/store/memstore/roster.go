package memstore

import (
	"context"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
)

func (s *Store) RotateAccessCode(ctx context.Context, actor store.Actor, code string, at time.Time) (*models.AccessCode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	coach := s.teamMember(actor.TeamID, actor.UserID, models.RoleCoach)
	if coach == nil || !coach.IsActive {
		return nil, store.Forbidden(store.OpRotateAccessCode, "only the team's coach can rotate the access code")
	}
	for teamID, ac := range s.accessCodes {
		if ac.Code == code && teamID != actor.TeamID {
			return nil, store.Conflict(store.OpRotateAccessCode, "access code collision")
		}
	}

	ac := &models.AccessCode{TeamID: actor.TeamID, Code: code, RotatedAt: at}
	s.accessCodes[actor.TeamID] = ac
	cp := *ac
	return &cp, nil
}

func (s *Store) PreviewTeamFromAccessCode(ctx context.Context, code string) (*models.TeamPreview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	teamID, ok := s.teamByCode(code)
	if !ok {
		return nil, store.NotFound(store.OpPreviewTeamFromAccessCode, "access code not found")
	}
	team := s.teams[teamID]
	return &models.TeamPreview{TeamName: team.Name, CoachName: s.displayName(team.CoachUserID)}, nil
}

func (s *Store) JoinTeamWithAccessCode(ctx context.Context, userID uuid.UUID, code, displayName string) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	teamID, ok := s.teamByCode(code)
	if !ok {
		return nil, store.NotFound(store.OpJoinTeamWithAccessCode, "access code not found")
	}
	if s.profileByUser(userID) != nil {
		return nil, store.InvalidState(store.OpJoinTeamWithAccessCode, "user already belongs to a team")
	}

	uid := userID
	p := &models.Profile{
		ID:          uuid.New(),
		UserID:      &uid,
		TeamID:      teamID,
		Role:        models.RolePlayer,
		DisplayName: displayName,
		IsActive:    true,
		CreatedAt:   s.now(),
	}
	s.profiles[p.ID] = p
	return copyProfile(p), nil
}

func (s *Store) CreateClaimToken(ctx context.Context, actor store.Actor, playerID uuid.UUID, token string, expiresAt time.Time) (*models.ClaimToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[playerID]
	if !ok || p.TeamID != actor.TeamID || p.Role != models.RolePlayer {
		return nil, store.NotFound(store.OpCreateClaimToken, "player not found")
	}
	if p.IsClaimed() {
		return nil, store.InvalidState(store.OpCreateClaimToken, "player already has an account")
	}
	if _, exists := s.claims[token]; exists {
		return nil, store.Conflict(store.OpCreateClaimToken, "claim token collision")
	}

	ct := &models.ClaimToken{
		Token:     token,
		PlayerID:  playerID,
		TeamID:    actor.TeamID,
		ExpiresAt: expiresAt,
		CreatedAt: s.now(),
	}
	s.claims[token] = ct
	return copyClaim(ct), nil
}

func (s *Store) GetClaimInfo(ctx context.Context, token string) (*models.ClaimInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, ok := s.claims[token]
	if !ok {
		return nil, store.NotFound(store.OpGetClaimInfo, "claim not found")
	}
	team := s.teams[ct.TeamID]
	info := &models.ClaimInfo{Token: *copyClaim(ct)}
	if p, ok := s.profiles[ct.PlayerID]; ok {
		info.PlayerName = p.DisplayName
	}
	if team != nil {
		info.TeamName = team.Name
		info.CoachName = s.displayName(team.CoachUserID)
	}
	return info, nil
}

func (s *Store) ClaimPlayerAccount(ctx context.Context, userID uuid.UUID, token string, at time.Time) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, ok := s.claims[token]
	if !ok {
		return nil, store.NotFound(store.OpClaimPlayerAccount, "claim not found")
	}
	if ct.IsClaimed() {
		return nil, store.InvalidState(store.OpClaimPlayerAccount, "claim link already used")
	}
	if ct.IsExpired(at) {
		return nil, store.InvalidState(store.OpClaimPlayerAccount, "claim link expired")
	}
	if s.profileByUser(userID) != nil {
		return nil, store.InvalidState(store.OpClaimPlayerAccount, "user already belongs to a team")
	}
	p, ok := s.profiles[ct.PlayerID]
	if !ok || p.IsClaimed() {
		return nil, store.InvalidState(store.OpClaimPlayerAccount, "player already has an account")
	}

	claimedAt := at
	uid := userID
	ct.ClaimedAt = &claimedAt
	ct.ClaimedByUserID = &uid
	p.UserID = &uid
	return copyProfile(p), nil
}

func (s *Store) SetPlayerActive(ctx context.Context, actor store.Actor, userID uuid.UUID, active bool) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.teamMember(actor.TeamID, userID, models.RolePlayer)
	if p == nil {
		return nil, store.NotFound(store.OpSetPlayerActive, "player not found")
	}
	p.IsActive = active
	return copyProfile(p), nil
}

// teamByCode must be called with s.mu held.
func (s *Store) teamByCode(code string) (uuid.UUID, bool) {
	for teamID, ac := range s.accessCodes {
		if ac.Code == code {
			return teamID, true
		}
	}
	return uuid.Nil, false
}

// displayName must be called with s.mu held.
func (s *Store) displayName(userID uuid.UUID) string {
	if p := s.profileByUser(userID); p != nil {
		return p.DisplayName
	}
	return ""
}

func copyClaim(ct *models.ClaimToken) *models.ClaimToken {
	cp := *ct
	if ct.ClaimedAt != nil {
		at := *ct.ClaimedAt
		cp.ClaimedAt = &at
	}
	if ct.ClaimedByUserID != nil {
		id := *ct.ClaimedByUserID
		cp.ClaimedByUserID = &id
	}
	return &cp
}
