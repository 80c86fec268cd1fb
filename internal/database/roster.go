package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const claimColumns = `token, player_id, team_id, expires_at, claimed_at, claimed_by_user_id, created_at`

func scanClaim(row pgx.Row) (*models.ClaimToken, error) {
	var ct models.ClaimToken
	err := row.Scan(&ct.Token, &ct.PlayerID, &ct.TeamID, &ct.ExpiresAt, &ct.ClaimedAt, &ct.ClaimedByUserID, &ct.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

// RotateAccessCode replaces the team's code in one statement. Concurrent
// rotations serialize on the team's row, so one code stays active.
func (s *Store) RotateAccessCode(ctx context.Context, actor store.Actor, code string, at time.Time) (*models.AccessCode, error) {
	var ac models.AccessCode
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO team_access_codes (team_id, code, rotated_at)
		SELECT $1::uuid, $2::varchar, $3::timestamptz
		WHERE EXISTS (
			SELECT 1 FROM profiles
			WHERE team_id = $1 AND user_id = $4 AND role = $5 AND is_active
		)
		ON CONFLICT (team_id) DO UPDATE
		SET code = EXCLUDED.code, rotated_at = EXCLUDED.rotated_at
		RETURNING team_id, code, rotated_at
	`, actor.TeamID, code, at, actor.UserID, models.RoleCoach).Scan(&ac.TeamID, &ac.Code, &ac.RotatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.Forbidden(store.OpRotateAccessCode, "only the team's coach can rotate the access code")
	}
	if isUniqueViolation(err) {
		return nil, store.Conflict(store.OpRotateAccessCode, "access code collision")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rotate access code: %w", err)
	}
	return &ac, nil
}

func (s *Store) PreviewTeamFromAccessCode(ctx context.Context, code string) (*models.TeamPreview, error) {
	var preview models.TeamPreview
	err := s.db.Pool.QueryRow(ctx, `
		SELECT t.name, COALESCE(p.display_name, '')
		FROM team_access_codes c
		JOIN teams t ON t.id = c.team_id
		LEFT JOIN profiles p ON p.user_id = t.coach_user_id
		WHERE c.code = $1
	`, code).Scan(&preview.TeamName, &preview.CoachName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound(store.OpPreviewTeamFromAccessCode, "access code not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to preview team: %w", err)
	}
	return &preview, nil
}

func (s *Store) JoinTeamWithAccessCode(ctx context.Context, userID uuid.UUID, code, displayName string) (*models.Profile, error) {
	var profile *models.Profile
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var teamID uuid.UUID
		err := tx.QueryRow(ctx, `
			SELECT team_id FROM team_access_codes WHERE code = $1 FOR SHARE
		`, code).Scan(&teamID)
		if errors.Is(err, pgx.ErrNoRows) {
			return store.NotFound(store.OpJoinTeamWithAccessCode, "access code not found")
		}
		if err != nil {
			return fmt.Errorf("failed to look up access code: %w", err)
		}

		profile, err = scanProfile(tx.QueryRow(ctx, `
			INSERT INTO profiles (user_id, team_id, role, display_name)
			VALUES ($1, $2, $3, $4)
			RETURNING `+profileColumns,
			userID, teamID, models.RolePlayer, displayName))
		if isUniqueViolation(err) {
			return store.InvalidState(store.OpJoinTeamWithAccessCode, "user already belongs to a team")
		}
		if err != nil {
			return fmt.Errorf("failed to join team: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Store) CreateClaimToken(ctx context.Context, actor store.Actor, playerID uuid.UUID, token string, expiresAt time.Time) (*models.ClaimToken, error) {
	var claim *models.ClaimToken
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var userID *uuid.UUID
		err := tx.QueryRow(ctx, `
			SELECT user_id FROM profiles
			WHERE id = $1 AND team_id = $2 AND role = $3
			FOR SHARE
		`, playerID, actor.TeamID, models.RolePlayer).Scan(&userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return store.NotFound(store.OpCreateClaimToken, "player not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load player: %w", err)
		}
		if userID != nil {
			return store.InvalidState(store.OpCreateClaimToken, "player already has an account")
		}

		claim, err = scanClaim(tx.QueryRow(ctx, `
			INSERT INTO claim_tokens (token, player_id, team_id, expires_at)
			VALUES ($1, $2, $3, $4)
			RETURNING `+claimColumns,
			token, playerID, actor.TeamID, expiresAt))
		if isUniqueViolation(err) {
			return store.Conflict(store.OpCreateClaimToken, "claim token collision")
		}
		if err != nil {
			return fmt.Errorf("failed to create claim token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claim, nil
}

func (s *Store) GetClaimInfo(ctx context.Context, token string) (*models.ClaimInfo, error) {
	var info models.ClaimInfo
	ct := &info.Token
	err := s.db.Pool.QueryRow(ctx, `
		SELECT c.token, c.player_id, c.team_id, c.expires_at, c.claimed_at, c.claimed_by_user_id, c.created_at,
		       p.display_name, t.name, COALESCE(coach.display_name, '')
		FROM claim_tokens c
		JOIN profiles p ON p.id = c.player_id
		JOIN teams t ON t.id = c.team_id
		LEFT JOIN profiles coach ON coach.user_id = t.coach_user_id
		WHERE c.token = $1
	`, token).Scan(
		&ct.Token, &ct.PlayerID, &ct.TeamID, &ct.ExpiresAt, &ct.ClaimedAt, &ct.ClaimedByUserID, &ct.CreatedAt,
		&info.PlayerName, &info.TeamName, &info.CoachName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound(store.OpGetClaimInfo, "claim not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return &info, nil
}

func (s *Store) ClaimPlayerAccount(ctx context.Context, userID uuid.UUID, token string, at time.Time) (*models.Profile, error) {
	var profile *models.Profile
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		claim, err := scanClaim(tx.QueryRow(ctx, `
			SELECT `+claimColumns+`
			FROM claim_tokens WHERE token = $1
			FOR UPDATE
		`, token))
		if errors.Is(err, pgx.ErrNoRows) {
			return store.NotFound(store.OpClaimPlayerAccount, "claim not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load claim: %w", err)
		}
		if claim.IsClaimed() {
			return store.InvalidState(store.OpClaimPlayerAccount, "claim link already used")
		}
		if claim.IsExpired(at) {
			return store.InvalidState(store.OpClaimPlayerAccount, "claim link expired")
		}

		var member bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM profiles WHERE user_id = $1)
		`, userID).Scan(&member)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if member {
			return store.InvalidState(store.OpClaimPlayerAccount, "user already belongs to a team")
		}

		profile, err = scanProfile(tx.QueryRow(ctx, `
			UPDATE profiles SET user_id = $2
			WHERE id = $1 AND user_id IS NULL
			RETURNING `+profileColumns,
			claim.PlayerID, userID))
		if errors.Is(err, pgx.ErrNoRows) {
			return store.InvalidState(store.OpClaimPlayerAccount, "player already has an account")
		}
		if isUniqueViolation(err) {
			return store.InvalidState(store.OpClaimPlayerAccount, "user already belongs to a team")
		}
		if err != nil {
			return fmt.Errorf("failed to bind profile: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE claim_tokens SET claimed_at = $2, claimed_by_user_id = $3
			WHERE token = $1
		`, token, at, userID)
		if err != nil {
			return fmt.Errorf("failed to mark claim used: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Store) SetPlayerActive(ctx context.Context, actor store.Actor, userID uuid.UUID, active bool) (*models.Profile, error) {
	profile, err := scanProfile(s.db.Pool.QueryRow(ctx, `
		UPDATE profiles SET is_active = $3
		WHERE team_id = $1 AND user_id = $2 AND role = $4
		RETURNING `+profileColumns,
		actor.TeamID, userID, active, models.RolePlayer))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound(store.OpSetPlayerActive, "player not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set player active: %w", err)
	}
	return profile, nil
}
