package services

import (
	"context"
	"fmt"

	"github.com/dantebozzuti27/baseline-video/internal/auth"
	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
)

// Caller is the resolved identity behind a request. Team and role always come
// from the persisted profile.
type Caller struct {
	UserID      uuid.UUID
	ProfileID   uuid.UUID
	TeamID      uuid.UUID
	Role        models.Role
	DisplayName string
	IsActive    bool
}

func (c *Caller) Actor() store.Actor {
	return store.Actor{UserID: c.UserID, TeamID: c.TeamID, Role: c.Role}
}

// Gate resolves callers. It only reads.
type Gate struct {
	profiles store.ProfileStore
}

func NewGate(profiles store.ProfileStore) *Gate {
	return &Gate{profiles: profiles}
}

// CurrentUser returns the authenticated user id, whether or not the user has
// joined a team yet.
func (g *Gate) CurrentUser(ctx context.Context) (uuid.UUID, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

// CurrentCaller resolves the authenticated user's profile. A user without a
// profile is not a caller.
func (g *Gate) CurrentCaller(ctx context.Context) (*Caller, error) {
	userID, err := g.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	p, err := g.profiles.GetCallerProfile(ctx, userID)
	if store.IsNotFound(err) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("resolve caller: %w", err)
	}
	return &Caller{
		UserID:      userID,
		ProfileID:   p.ID,
		TeamID:      p.TeamID,
		Role:        p.Role,
		DisplayName: p.DisplayName,
		IsActive:    p.IsActive,
	}, nil
}

func RequireRole(c *Caller, role models.Role) error {
	if c.Role != role {
		return forbidden(fmt.Sprintf("requires the %s role", role))
	}
	return nil
}

func RequireActive(c *Caller) error {
	if !c.IsActive {
		return forbidden("profile is inactive")
	}
	return nil
}

// RequireOwnership passes when the caller owns the resource or coaches the
// team. Content workflows get the same rule from store.Actor.MayModify, which
// both stores apply while the row is locked.
func RequireOwnership(c *Caller, ownerUserID uuid.UUID) error {
	if !c.Actor().MayModify(ownerUserID) {
		return forbidden("not the owner")
	}
	return nil
}
