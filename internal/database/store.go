package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Store implements store.Store on Postgres. Each operation runs as a single
// statement or inside one transaction that locks the rows it checks.
type Store struct {
	db *DB
}

var _ store.Store = (*Store)(nil)

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func (s *Store) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

const profileColumns = `id, user_id, team_id, role, display_name, is_active, created_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	var role string
	if err := row.Scan(&p.ID, &p.UserID, &p.TeamID, &role, &p.DisplayName, &p.IsActive, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Role = models.Role(role)
	return &p, nil
}

func (s *Store) GetCallerProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	p, err := scanProfile(s.db.Pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profiles WHERE user_id = $1
	`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound(store.OpGetCallerProfile, "profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// EnsureTeam returns the team coached by coachUserID, creating the team and
// the coach profile on first use.
func (s *Store) EnsureTeam(ctx context.Context, name string, coachUserID uuid.UUID, coachName string) (*models.Team, error) {
	var team models.Team
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT id, name, coach_user_id, created_at
			FROM teams WHERE coach_user_id = $1
			ORDER BY created_at LIMIT 1
		`, coachUserID).Scan(&team.ID, &team.Name, &team.CoachUserID, &team.CreatedAt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to look up team: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO teams (name, coach_user_id)
			VALUES ($1, $2)
			RETURNING id, name, coach_user_id, created_at
		`, name, coachUserID).Scan(&team.ID, &team.Name, &team.CoachUserID, &team.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (user_id, team_id, role, display_name)
			VALUES ($1, $2, $3, $4)
		`, coachUserID, team.ID, models.RoleCoach, coachName)
		if err != nil {
			return fmt.Errorf("failed to create coach profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// ImportPlayer adds a player profile; a nil userID leaves it unclaimed.
func (s *Store) ImportPlayer(ctx context.Context, teamID uuid.UUID, name string, userID *uuid.UUID) (*models.Profile, error) {
	p, err := scanProfile(s.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, team_id, role, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING `+profileColumns,
		userID, teamID, models.RolePlayer, name))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.InvalidState("import_player", "user already belongs to a team")
		}
		return nil, fmt.Errorf("failed to import player: %w", err)
	}
	return p, nil
}
