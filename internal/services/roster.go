package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/events"
	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
)

const (
	// Access codes avoid 0/O and 1/I so they survive being read aloud.
	accessCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	accessCodeLength   = 8
	claimTokenBytes    = 32

	// rotateAttempts bounds retries after a code collision with another team.
	rotateAttempts = 3

	maxClaimTTL = 30 * 24 * time.Hour
)

// GenerateAccessCode returns a random code from accessCodeAlphabet.
func GenerateAccessCode() (string, error) {
	buf := make([]byte, accessCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate access code: %w", err)
	}
	for i, b := range buf {
		buf[i] = accessCodeAlphabet[int(b)%len(accessCodeAlphabet)]
	}
	return string(buf), nil
}

// NewClaimToken returns 32 random bytes, base64url encoded.
func NewClaimToken() (string, error) {
	buf := make([]byte, claimTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate claim token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func normalizeAccessCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 4 || len(code) > 16 {
		return "", invalidInput("access code is malformed")
	}
	return code, nil
}

// ClaimPreview is what an unauthenticated visitor sees for a claim link.
type ClaimPreview struct {
	PlayerName string
	TeamName   string
	CoachName  string
	ExpiresAt  time.Time
	IsExpired  bool
	IsClaimed  bool
	IsValid    bool
}

// RosterService onboards players through team access codes and single-use
// claim links.
type RosterService struct {
	base
	claimTTL time.Duration
	newCode  func() (string, error)
	newToken func() (string, error)
}

func NewRosterService(deps Deps, claimTTL time.Duration) *RosterService {
	return &RosterService{
		base:     newBase(deps),
		claimTTL: claimTTL,
		newCode:  GenerateAccessCode,
		newToken: NewClaimToken,
	}
}

// RotateAccessCode replaces the team's code. The previous code stops
// resolving as soon as the rotation commits.
func (s *RosterService) RotateAccessCode(ctx context.Context) (*models.AccessCode, error) {
	return run(&s.base, ctx, store.OpRotateAccessCode, func(ctx context.Context) (*models.AccessCode, error) {
		c, err := s.caller(ctx, models.RoleCoach)
		if err != nil {
			return nil, err
		}

		var lastErr error
		for attempt := 0; attempt < rotateAttempts; attempt++ {
			code, err := s.newCode()
			if err != nil {
				return nil, err
			}
			ac, err := s.store.RotateAccessCode(ctx, c.Actor(), code, s.now())
			if err == nil {
				s.emit(ctx, teamEvent(c, events.AccessCodeRotated, "team", c.TeamID, nil))
				return ac, nil
			}
			if kind, ok := store.KindOf(err); !ok || kind != store.KindConflict {
				return nil, err
			}
			lastErr = err
		}
		return nil, lastErr
	})
}

// PreviewTeamFromAccessCode needs no caller and only reveals the team and
// coach names.
func (s *RosterService) PreviewTeamFromAccessCode(ctx context.Context, code string) (*models.TeamPreview, error) {
	return run(&s.base, ctx, store.OpPreviewTeamFromAccessCode, func(ctx context.Context) (*models.TeamPreview, error) {
		code, err := normalizeAccessCode(code)
		if err != nil {
			return nil, err
		}
		return s.store.PreviewTeamFromAccessCode(ctx, code)
	})
}

// JoinTeamWithAccessCode gives an authenticated user without a team a
// player profile in the code's team.
func (s *RosterService) JoinTeamWithAccessCode(ctx context.Context, code, displayName string) (*models.Profile, error) {
	return run(&s.base, ctx, store.OpJoinTeamWithAccessCode, func(ctx context.Context) (*models.Profile, error) {
		userID, err := s.gate.CurrentUser(ctx)
		if err != nil {
			return nil, err
		}
		code, err := normalizeAccessCode(code)
		if err != nil {
			return nil, err
		}
		name, err := requiredText(displayName, "display name", maxDisplayNameLength)
		if err != nil {
			return nil, err
		}

		p, err := s.store.JoinTeamWithAccessCode(ctx, userID, code, name)
		if err != nil {
			return nil, err
		}
		s.emit(ctx, events.Event{
			TeamID:      ptr(p.TeamID),
			ActorUserID: ptr(userID),
			EventType:   events.TeamJoined,
			SubjectType: "profile",
			SubjectID:   p.ID,
		})
		return p, nil
	})
}

// IssueClaimToken creates a claim link for an unclaimed player. A zero ttl
// uses the configured default.
func (s *RosterService) IssueClaimToken(ctx context.Context, playerID uuid.UUID, ttl time.Duration) (*models.ClaimToken, error) {
	return run(&s.base, ctx, store.OpCreateClaimToken, func(ctx context.Context) (*models.ClaimToken, error) {
		c, err := s.caller(ctx, models.RoleCoach)
		if err != nil {
			return nil, err
		}
		if ttl == 0 {
			ttl = s.claimTTL
		}
		if ttl <= 0 || ttl > maxClaimTTL {
			return nil, invalidInput("claim link lifetime must be between 1s and 30 days")
		}

		token, err := s.newToken()
		if err != nil {
			return nil, err
		}
		ct, err := s.store.CreateClaimToken(ctx, c.Actor(), playerID, token, s.now().Add(ttl))
		if err != nil {
			return nil, err
		}
		s.emit(ctx, teamEvent(c, events.ClaimTokenIssued, "profile", playerID, map[string]any{
			"expires_at": ct.ExpiresAt,
		}))
		return ct, nil
	})
}

// PreviewClaim reports a claim link's state. A claimed token is never valid,
// whatever its expiry.
func (s *RosterService) PreviewClaim(ctx context.Context, token string) (*ClaimPreview, error) {
	return run(&s.base, ctx, store.OpGetClaimInfo, func(ctx context.Context) (*ClaimPreview, error) {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, invalidInput("token is required")
		}

		info, err := s.store.GetClaimInfo(ctx, token)
		if err != nil {
			return nil, err
		}
		now := s.now()
		return &ClaimPreview{
			PlayerName: info.PlayerName,
			TeamName:   info.TeamName,
			CoachName:  info.CoachName,
			ExpiresAt:  info.Token.ExpiresAt,
			IsExpired:  info.Token.IsExpired(now),
			IsClaimed:  info.Token.IsClaimed(),
			IsValid:    info.Token.IsValid(now),
		}, nil
	})
}

// ClaimAccount binds the authenticated user to the player record behind a
// valid claim link.
func (s *RosterService) ClaimAccount(ctx context.Context, token string) (*models.Profile, error) {
	return run(&s.base, ctx, store.OpClaimPlayerAccount, func(ctx context.Context) (*models.Profile, error) {
		userID, err := s.gate.CurrentUser(ctx)
		if err != nil {
			return nil, err
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, invalidInput("token is required")
		}

		p, err := s.store.ClaimPlayerAccount(ctx, userID, token, s.now())
		if err != nil {
			return nil, err
		}
		s.emit(ctx, events.Event{
			TeamID:      ptr(p.TeamID),
			ActorUserID: ptr(userID),
			EventType:   events.AccountClaimed,
			SubjectType: "profile",
			SubjectID:   p.ID,
		})
		return p, nil
	})
}

// SetPlayerActive toggles a teammate's active flag. Inactive players are
// rejected by every later mutating operation.
func (s *RosterService) SetPlayerActive(ctx context.Context, userID uuid.UUID, active bool) (*models.Profile, error) {
	return run(&s.base, ctx, store.OpSetPlayerActive, func(ctx context.Context) (*models.Profile, error) {
		c, err := s.caller(ctx, models.RoleCoach)
		if err != nil {
			return nil, err
		}

		p, err := s.store.SetPlayerActive(ctx, c.Actor(), userID, active)
		if err != nil {
			return nil, err
		}
		s.emit(ctx, teamEvent(c, events.PlayerActiveSet, "profile", p.ID, map[string]any{"active": active}))
		return p, nil
	})
}
