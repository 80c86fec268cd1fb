// Package seed loads a team roster from YAML and writes it through the store.
// It backs the in-memory dev server and cmd/roster-import.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/services"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type File struct {
	Team    Team     `yaml:"team"`
	Players []Player `yaml:"players"`
}

type Team struct {
	Name        string `yaml:"name"`
	CoachUserID string `yaml:"coach_user_id"`
	CoachName   string `yaml:"coach_name"`
}

// Player is a roster entry. Entries without a user id are imported
// unclaimed and can be sent a claim link.
type Player struct {
	Name   string `yaml:"name"`
	Email  string `yaml:"email,omitempty"`
	UserID string `yaml:"user_id,omitempty"`
}

// Target is the subset of store.Store plus the seeding methods both store
// implementations provide.
type Target interface {
	EnsureTeam(ctx context.Context, name string, coachUserID uuid.UUID, coachName string) (*models.Team, error)
	ImportPlayer(ctx context.Context, teamID uuid.UUID, name string, userID *uuid.UUID) (*models.Profile, error)
	CreateClaimToken(ctx context.Context, actor store.Actor, playerID uuid.UUID, token string, expiresAt time.Time) (*models.ClaimToken, error)
}

type Options struct {
	// IssueClaims creates a claim token for every unclaimed player.
	IssueClaims bool
	ClaimTTL    time.Duration
	Now         time.Time
	NewToken    func() (string, error)
}

type Imported struct {
	Profile *models.Profile
	Email   string
	Claim   *models.ClaimToken
}

type Result struct {
	Team    *models.Team
	Players []Imported
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse roster file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) Validate() error {
	if strings.TrimSpace(f.Team.Name) == "" {
		return errors.New("team.name is required")
	}
	if _, err := uuid.Parse(f.Team.CoachUserID); err != nil {
		return fmt.Errorf("team.coach_user_id: %w", err)
	}
	if strings.TrimSpace(f.Team.CoachName) == "" {
		return errors.New("team.coach_name is required")
	}
	for i, p := range f.Players {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("players[%d].name is required", i)
		}
		if p.UserID != "" {
			if _, err := uuid.Parse(p.UserID); err != nil {
				return fmt.Errorf("players[%d].user_id: %w", i, err)
			}
		}
	}
	return nil
}

// Apply creates the team if the coach has none yet and appends every player.
// Players are not deduplicated; importing the same file twice adds them twice.
func Apply(ctx context.Context, target Target, f *File, opts Options) (*Result, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.NewToken == nil {
		opts.NewToken = services.NewClaimToken
	}
	if opts.IssueClaims && opts.ClaimTTL <= 0 {
		return nil, errors.New("claim ttl must be positive")
	}

	coachUserID := uuid.MustParse(f.Team.CoachUserID)
	team, err := target.EnsureTeam(ctx, strings.TrimSpace(f.Team.Name), coachUserID, strings.TrimSpace(f.Team.CoachName))
	if err != nil {
		return nil, fmt.Errorf("ensure team: %w", err)
	}
	coach := store.Actor{UserID: coachUserID, TeamID: team.ID, Role: models.RoleCoach}

	res := &Result{Team: team}
	for _, p := range f.Players {
		var userID *uuid.UUID
		if p.UserID != "" {
			id := uuid.MustParse(p.UserID)
			userID = &id
		}

		profile, err := target.ImportPlayer(ctx, team.ID, strings.TrimSpace(p.Name), userID)
		if err != nil {
			return nil, fmt.Errorf("import player %q: %w", p.Name, err)
		}
		imported := Imported{Profile: profile, Email: p.Email}

		if opts.IssueClaims && !profile.IsClaimed() {
			token, err := opts.NewToken()
			if err != nil {
				return nil, err
			}
			imported.Claim, err = target.CreateClaimToken(ctx, coach, profile.ID, token, opts.Now.Add(opts.ClaimTTL))
			if err != nil {
				return nil, fmt.Errorf("issue claim token for %q: %w", p.Name, err)
			}
		}
		res.Players = append(res.Players, imported)
	}
	return res, nil
}
