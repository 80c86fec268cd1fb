package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/dantebozzuti27/baseline-video/internal/database"
	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/google/uuid"
)

// Fixtures inserts rows the workflow operations act on but never create
// themselves: teams, templates, assignments, media, submissions and content.
type Fixtures struct {
	db      *database.DB
	counter int
}

func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateTeam creates a team with an active, claimed coach profile.
func (f *Fixtures) CreateTeam(t *testing.T) (*models.Team, uuid.UUID) {
	t.Helper()
	f.counter++

	coachID := uuid.New()
	var team models.Team
	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO teams (name, coach_user_id)
		VALUES ($1, $2)
		RETURNING id, name, coach_user_id, created_at
	`, fmt.Sprintf("Team %d", f.counter), coachID).Scan(&team.ID, &team.Name, &team.CoachUserID, &team.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	f.insertProfile(t, team.ID, &coachID, models.RoleCoach, fmt.Sprintf("Coach %d", f.counter))
	return &team, coachID
}

// CreatePlayer adds a claimed, active player to the team and returns its user id.
func (f *Fixtures) CreatePlayer(t *testing.T, teamID uuid.UUID) uuid.UUID {
	t.Helper()
	f.counter++
	userID := uuid.New()
	f.insertProfile(t, teamID, &userID, models.RolePlayer, fmt.Sprintf("Player %d", f.counter))
	return userID
}

// CreateUnclaimedPlayer adds a roster entry without an account and returns
// its profile id.
func (f *Fixtures) CreateUnclaimedPlayer(t *testing.T, teamID uuid.UUID) uuid.UUID {
	t.Helper()
	f.counter++
	return f.insertProfile(t, teamID, nil, models.RolePlayer, fmt.Sprintf("Player %d", f.counter))
}

func (f *Fixtures) CreateTemplate(t *testing.T, teamID, coachID uuid.UUID) uuid.UUID {
	t.Helper()
	return f.insertID(t, `
		INSERT INTO program_templates (team_id, coach_user_id, title)
		VALUES ($1, $2, $3) RETURNING id
	`, teamID, coachID, "Hitting fundamentals")
}

func (f *Fixtures) CreateAssignment(t *testing.T, templateID uuid.UUID) uuid.UUID {
	t.Helper()
	return f.insertID(t, `
		INSERT INTO program_assignments (template_id, day_ref)
		VALUES ($1, $2) RETURNING id
	`, templateID, "week1-day1")
}

func (f *Fixtures) CreateDrillMedia(t *testing.T, assignmentID uuid.UUID) uuid.UUID {
	t.Helper()
	return f.insertID(t, `
		INSERT INTO program_drill_media (assignment_id, media_ref)
		VALUES ($1, $2) RETURNING id
	`, assignmentID, "drills/tee-work.mp4")
}

func (f *Fixtures) CreateSubmission(t *testing.T, enrollmentID uuid.UUID) uuid.UUID {
	t.Helper()
	return f.insertID(t, `
		INSERT INTO program_submissions (enrollment_id, media_ref)
		VALUES ($1, $2) RETURNING id
	`, enrollmentID, "submissions/swing.mp4")
}

func (f *Fixtures) CreateVideo(t *testing.T, teamID, ownerID uuid.UUID) uuid.UUID {
	t.Helper()
	return f.insertID(t, `
		INSERT INTO videos (team_id, owner_user_id, storage_ref)
		VALUES ($1, $2, $3) RETURNING id
	`, teamID, ownerID, "videos/clip.mp4")
}

func (f *Fixtures) CreateComment(t *testing.T, teamID, videoID, ownerID uuid.UUID) uuid.UUID {
	t.Helper()
	return f.insertID(t, `
		INSERT INTO comments (team_id, video_id, owner_user_id, body)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, teamID, videoID, ownerID, "nice load")
}

func (f *Fixtures) insertProfile(t *testing.T, teamID uuid.UUID, userID *uuid.UUID, role models.Role, name string) uuid.UUID {
	t.Helper()
	return f.insertID(t, `
		INSERT INTO profiles (user_id, team_id, role, display_name)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, userID, teamID, role, name)
}

func (f *Fixtures) insertID(t *testing.T, sql string, args ...any) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	if err := f.db.Pool.QueryRow(context.Background(), sql, args...).Scan(&id); err != nil {
		t.Fatalf("failed to insert fixture: %v", err)
	}
	return id
}
