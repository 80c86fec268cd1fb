package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/events"
	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCodes(codes ...string) func() (string, error) {
	var mu sync.Mutex
	i := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		code := codes[i%len(codes)]
		i++
		return code, nil
	}
}

func TestGenerateAccessCode(t *testing.T) {
	code, err := GenerateAccessCode()

	require.NoError(t, err)
	assert.Len(t, code, accessCodeLength)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(accessCodeAlphabet, r), "unexpected rune %q", r)
	}
}

func TestNewClaimToken(t *testing.T) {
	a, err := NewClaimToken()
	require.NoError(t, err)
	b, err := NewClaimToken()
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}

func TestRosterService_RotateAccessCode(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)

	first, err := svc.RotateAccessCode(as(f.coachID))
	require.NoError(t, err)
	second, err := svc.RotateAccessCode(as(f.coachID))
	require.NoError(t, err)

	_, err = svc.PreviewTeamFromAccessCode(context.Background(), first.Code)
	assert.ErrorIs(t, err, ErrNotFound)

	preview, err := svc.PreviewTeamFromAccessCode(context.Background(), strings.ToLower(second.Code))
	require.NoError(t, err)
	assert.Equal(t, "River Hawks", preview.TeamName)
	assert.Equal(t, "Coach Kim", preview.CoachName)
	assert.Equal(t, 2, f.sink.count(events.AccessCodeRotated))
}

func TestRosterService_RotateAccessCode_OnlyCoach(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)

	_, err := svc.RotateAccessCode(as(f.playerID))

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, f.store.ActiveAccessCodes())
}

func TestRosterService_RotateAccessCode_RetriesCollision(t *testing.T) {
	f := newTeamFixture(t)
	otherCoach := uuid.New()
	f.store.AddTeam("Harbor Cats", otherCoach, "Coach Lee")

	other := NewRosterService(f.deps, time.Hour)
	other.newCode = fixedCodes("TAKEN234")
	_, err := other.RotateAccessCode(as(otherCoach))
	require.NoError(t, err)

	svc := NewRosterService(f.deps, time.Hour)
	svc.newCode = fixedCodes("TAKEN234", "FRESH567")
	ac, err := svc.RotateAccessCode(as(f.coachID))

	require.NoError(t, err)
	assert.Equal(t, "FRESH567", ac.Code)
}

func TestRosterService_RotateAccessCode_GivesUpAfterCollisions(t *testing.T) {
	f := newTeamFixture(t)
	otherCoach := uuid.New()
	f.store.AddTeam("Harbor Cats", otherCoach, "Coach Lee")

	other := NewRosterService(f.deps, time.Hour)
	other.newCode = fixedCodes("TAKEN234")
	_, err := other.RotateAccessCode(as(otherCoach))
	require.NoError(t, err)

	svc := NewRosterService(f.deps, time.Hour)
	svc.newCode = fixedCodes("TAKEN234")
	_, err = svc.RotateAccessCode(as(f.coachID))

	assert.ErrorIs(t, err, ErrConflict)
	_, ok := f.store.AccessCode(f.team.ID)
	assert.False(t, ok)
}

func TestRosterService_RotateAccessCode_Concurrent(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)

	const n = 8
	var wg sync.WaitGroup
	codes := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ac, err := svc.RotateAccessCode(as(f.coachID))
			if assert.NoError(t, err) {
				codes[i] = ac.Code
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, f.store.ActiveAccessCodes())
	current, ok := f.store.AccessCode(f.team.ID)
	require.True(t, ok)
	assert.Contains(t, codes, current.Code)

	resolving := 0
	for _, code := range codes {
		if _, err := svc.PreviewTeamFromAccessCode(context.Background(), code); err == nil {
			resolving++
		}
	}
	assert.Equal(t, 1, resolving)
}

func TestRosterService_PreviewTeamFromAccessCode_Malformed(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)

	for _, code := range []string{"", "  ", "ABC", strings.Repeat("A", 17)} {
		_, err := svc.PreviewTeamFromAccessCode(context.Background(), code)
		assert.ErrorIs(t, err, ErrInvalidInput, "code %q", code)
	}
}

func TestRosterService_JoinTeamWithAccessCode(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)
	ac, err := svc.RotateAccessCode(as(f.coachID))
	require.NoError(t, err)
	newUser := uuid.New()

	p, err := svc.JoinTeamWithAccessCode(as(newUser), " "+strings.ToLower(ac.Code)+" ", "  Alex Moreno ")

	require.NoError(t, err)
	assert.Equal(t, f.team.ID, p.TeamID)
	assert.Equal(t, models.RolePlayer, p.Role)
	assert.Equal(t, "Alex Moreno", p.DisplayName)
	assert.True(t, p.IsActive)
	require.NotNil(t, p.UserID)
	assert.Equal(t, newUser, *p.UserID)
	assert.Equal(t, 1, f.sink.count(events.TeamJoined))

	_, err = svc.JoinTeamWithAccessCode(as(newUser), ac.Code, "Alex Moreno")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRosterService_JoinTeamWithAccessCode_Rejections(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)
	ac, err := svc.RotateAccessCode(as(f.coachID))
	require.NoError(t, err)

	_, err = svc.JoinTeamWithAccessCode(context.Background(), ac.Code, "Alex")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.JoinTeamWithAccessCode(as(uuid.New()), ac.Code, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.JoinTeamWithAccessCode(as(uuid.New()), "ZZZZ9999", "Alex")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.JoinTeamWithAccessCode(as(f.playerID), ac.Code, "Sam")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRosterService_ClaimFlow(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, 7*24*time.Hour)
	player := f.store.AddUnclaimedPlayer(f.team.ID, "Casey Ortiz")

	ct, err := svc.IssueClaimToken(as(f.coachID), player.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, f.clock().Add(7*24*time.Hour), ct.ExpiresAt)

	preview, err := svc.PreviewClaim(context.Background(), ct.Token)
	require.NoError(t, err)
	assert.Equal(t, "Casey Ortiz", preview.PlayerName)
	assert.Equal(t, "River Hawks", preview.TeamName)
	assert.Equal(t, "Coach Kim", preview.CoachName)
	assert.True(t, preview.IsValid)

	userID := uuid.New()
	claimed, err := svc.ClaimAccount(as(userID), ct.Token)
	require.NoError(t, err)
	assert.Equal(t, player.ID, claimed.ID)
	require.NotNil(t, claimed.UserID)
	assert.Equal(t, userID, *claimed.UserID)

	preview, err = svc.PreviewClaim(context.Background(), ct.Token)
	require.NoError(t, err)
	assert.True(t, preview.IsClaimed)
	assert.False(t, preview.IsExpired)
	assert.False(t, preview.IsValid)

	_, err = svc.ClaimAccount(as(uuid.New()), ct.Token)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.IssueClaimToken(as(f.coachID), player.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidState)

	assert.Equal(t, []string{events.ClaimTokenIssued, events.AccountClaimed}, f.sink.types())
}

func TestRosterService_PreviewClaim_ClaimedThenExpired(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)
	player := f.store.AddUnclaimedPlayer(f.team.ID, "Casey Ortiz")
	ct, err := svc.IssueClaimToken(as(f.coachID), player.ID, 0)
	require.NoError(t, err)
	_, err = svc.ClaimAccount(as(uuid.New()), ct.Token)
	require.NoError(t, err)

	f.advance(2 * time.Hour)

	preview, err := svc.PreviewClaim(context.Background(), ct.Token)
	require.NoError(t, err)
	assert.True(t, preview.IsClaimed)
	assert.True(t, preview.IsExpired)
	assert.False(t, preview.IsValid)
	assert.Equal(t, ct.ExpiresAt, preview.ExpiresAt)
}

func TestRosterService_ClaimAccount_Expired(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)
	player := f.store.AddUnclaimedPlayer(f.team.ID, "Casey Ortiz")
	ct, err := svc.IssueClaimToken(as(f.coachID), player.ID, 0)
	require.NoError(t, err)

	f.advance(time.Hour)

	preview, err := svc.PreviewClaim(context.Background(), ct.Token)
	require.NoError(t, err)
	assert.True(t, preview.IsExpired)
	assert.False(t, preview.IsValid)

	_, err = svc.ClaimAccount(as(uuid.New()), ct.Token)
	assert.ErrorIs(t, err, ErrInvalidState)

	stored, _ := f.store.Profile(player.ID)
	assert.False(t, stored.IsClaimed())
}

func TestRosterService_ClaimAccount_UserAlreadyOnTeam(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)
	player := f.store.AddUnclaimedPlayer(f.team.ID, "Casey Ortiz")
	ct, err := svc.IssueClaimToken(as(f.coachID), player.ID, 0)
	require.NoError(t, err)

	_, err = svc.ClaimAccount(as(f.playerID), ct.Token)

	assert.ErrorIs(t, err, ErrInvalidState)
	stored, _ := f.store.ClaimToken(ct.Token)
	assert.False(t, stored.IsClaimed())
}

func TestRosterService_ClaimAccount_Concurrent(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)
	player := f.store.AddUnclaimedPlayer(f.team.ID, "Casey Ortiz")
	ct, err := svc.IssueClaimToken(as(f.coachID), player.ID, 0)
	require.NoError(t, err)

	const n = 6
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ClaimAccount(as(uuid.New()), ct.Token)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestRosterService_IssueClaimToken_Rejections(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)
	player := f.store.AddUnclaimedPlayer(f.team.ID, "Casey Ortiz")

	_, err := svc.IssueClaimToken(as(f.playerID), player.ID, 0)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.IssueClaimToken(as(f.coachID), player.ID, 31*24*time.Hour)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.IssueClaimToken(as(f.coachID), player.ID, -time.Minute)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.IssueClaimToken(as(f.coachID), uuid.New(), 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRosterService_PreviewClaim_Unknown(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)

	_, err := svc.PreviewClaim(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.PreviewClaim(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRosterService_SetPlayerActive(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)
	programs := NewProgramService(f.deps)
	templateID := f.store.AddTemplate(f.team.ID, f.coachID, "Arm care")
	assignmentID := f.store.AddAssignment(templateID, "day1")
	_, err := programs.Enroll(as(f.coachID), templateID, f.playerID, time.Time{})
	require.NoError(t, err)

	p, err := svc.SetPlayerActive(as(f.coachID), f.playerID, false)
	require.NoError(t, err)
	assert.False(t, p.IsActive)

	_, err = programs.CompleteAssignment(as(f.playerID), assignmentID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.SetPlayerActive(as(f.coachID), f.playerID, true)
	require.NoError(t, err)

	_, err = programs.CompleteAssignment(as(f.playerID), assignmentID)
	assert.NoError(t, err)
}

func TestRosterService_SetPlayerActive_Rejections(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewRosterService(f.deps, time.Hour)

	_, err := svc.SetPlayerActive(as(f.playerID), f.playerID, true)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.SetPlayerActive(as(f.coachID), uuid.New(), false)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SetPlayerActive(as(f.coachID), f.coachID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}
