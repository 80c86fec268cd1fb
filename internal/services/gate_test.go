package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenProfiles struct{}

func (brokenProfiles) GetCallerProfile(context.Context, uuid.UUID) (*models.Profile, error) {
	return nil, errors.New("connection refused")
}

func TestGate_CurrentUser_Unauthenticated(t *testing.T) {
	f := newTeamFixture(t)
	gate := NewGate(f.store)

	_, err := gate.CurrentUser(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGate_CurrentCaller(t *testing.T) {
	f := newTeamFixture(t)
	gate := NewGate(f.store)

	c, err := gate.CurrentCaller(as(f.coachID))

	require.NoError(t, err)
	assert.Equal(t, f.coachID, c.UserID)
	assert.Equal(t, f.team.ID, c.TeamID)
	assert.Equal(t, models.RoleCoach, c.Role)
	assert.Equal(t, "Coach Kim", c.DisplayName)
	assert.True(t, c.IsActive)
}

func TestGate_CurrentCaller_NoProfile(t *testing.T) {
	f := newTeamFixture(t)
	gate := NewGate(f.store)

	_, err := gate.CurrentCaller(as(uuid.New()))

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGate_CurrentCaller_StoreFailure(t *testing.T) {
	gate := NewGate(brokenProfiles{})

	_, err := gate.CurrentCaller(as(uuid.New()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve caller")
	assert.Equal(t, KindServer, KindOf(err))
}

func TestRequireRole(t *testing.T) {
	coach := &Caller{Role: models.RoleCoach, IsActive: true}

	assert.NoError(t, RequireRole(coach, models.RoleCoach))
	assert.ErrorIs(t, RequireRole(coach, models.RolePlayer), ErrForbidden)
}

func TestRequireActive(t *testing.T) {
	assert.NoError(t, RequireActive(&Caller{IsActive: true}))
	assert.ErrorIs(t, RequireActive(&Caller{IsActive: false}), ErrForbidden)
}

func TestRequireOwnership(t *testing.T) {
	owner := uuid.New()

	testCases := []struct {
		name    string
		caller  *Caller
		allowed bool
	}{
		{"owner", &Caller{UserID: owner, Role: models.RolePlayer}, true},
		{"coach", &Caller{UserID: uuid.New(), Role: models.RoleCoach}, true},
		{"other player", &Caller{UserID: uuid.New(), Role: models.RolePlayer}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireOwnership(tc.caller, owner)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewProgramService(f.deps)
	inactive := f.addPlayer("Jo Park")
	_, err := f.store.SetPlayerActive(context.Background(),
		store.Actor{UserID: f.coachID, TeamID: f.team.ID, Role: models.RoleCoach}, inactive, false)
	require.NoError(t, err)

	testCases := []struct {
		name string
		ctx  context.Context
		want error
	}{
		{"coach", as(f.coachID), nil},
		{"player", as(f.playerID), ErrForbidden},
		{"inactive player", as(inactive), ErrForbidden},
		{"no profile", as(uuid.New()), ErrUnauthorized},
		{"unauthenticated", context.Background(), ErrUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Authorize(tc.ctx, models.RoleCoach)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
	assert.Empty(t, f.sink.types())
}
