package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(120) NOT NULL,
		coach_user_id UUID NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// user_id is NULL for roster entries that have not been claimed yet.
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID UNIQUE,
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		role VARCHAR(20) NOT NULL CHECK (role IN ('coach', 'player')),
		display_name VARCHAR(120) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS lessons (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		coach_user_id UUID NOT NULL,
		player_user_id UUID NOT NULL,
		created_by UUID NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'accepted', 'declined', 'cancelled')),
		start_at TIMESTAMP WITH TIME ZONE NOT NULL,
		duration_minutes INTEGER NOT NULL,
		note TEXT,
		cancelled_by UUID,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS lesson_participants (
		lesson_id UUID NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
		player_user_id UUID NOT NULL,
		present BOOLEAN NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		PRIMARY KEY (lesson_id, player_user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS program_templates (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		coach_user_id UUID NOT NULL,
		title VARCHAR(200) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS program_focuses (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		name VARCHAR(120) NOT NULL,
		description TEXT,
		cues TEXT[] NOT NULL DEFAULT '{}',
		created_by UUID NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS program_assignments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		template_id UUID NOT NULL REFERENCES program_templates(id) ON DELETE CASCADE,
		day_ref VARCHAR(50) NOT NULL,
		focus_id UUID REFERENCES program_focuses(id) ON DELETE SET NULL,
		title VARCHAR(200) NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS program_drill_media (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		assignment_id UUID NOT NULL REFERENCES program_assignments(id) ON DELETE CASCADE,
		media_ref VARCHAR(500) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS program_enrollments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		template_id UUID NOT NULL REFERENCES program_templates(id) ON DELETE CASCADE,
		player_user_id UUID NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active'
			CHECK (status IN ('active', 'paused', 'completed')),
		start_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS program_assignment_completions (
		assignment_id UUID NOT NULL REFERENCES program_assignments(id) ON DELETE CASCADE,
		player_user_id UUID NOT NULL,
		completed_at TIMESTAMP WITH TIME ZONE NOT NULL,
		PRIMARY KEY (assignment_id, player_user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS program_submissions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		enrollment_id UUID NOT NULL REFERENCES program_enrollments(id) ON DELETE CASCADE,
		media_ref VARCHAR(500) NOT NULL,
		reviewed_at TIMESTAMP WITH TIME ZONE,
		review_note TEXT,
		reviewed_by UUID,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS team_access_codes (
		team_id UUID PRIMARY KEY REFERENCES teams(id) ON DELETE CASCADE,
		code VARCHAR(16) NOT NULL UNIQUE,
		rotated_at TIMESTAMP WITH TIME ZONE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS claim_tokens (
		token VARCHAR(128) PRIMARY KEY,
		player_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		claimed_at TIMESTAMP WITH TIME ZONE,
		claimed_by_user_id UUID,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS videos (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		owner_user_id UUID NOT NULL,
		storage_ref VARCHAR(500) NOT NULL DEFAULT '',
		deleted_at TIMESTAMP WITH TIME ZONE,
		deleted_by_user_id UUID,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		video_id UUID REFERENCES videos(id) ON DELETE CASCADE,
		owner_user_id UUID NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		deleted_at TIMESTAMP WITH TIME ZONE,
		deleted_by_user_id UUID,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS video_views (
		video_id UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		last_seen_at TIMESTAMP WITH TIME ZONE NOT NULL,
		PRIMARY KEY (video_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS feed_seen (
		user_id UUID PRIMARY KEY,
		last_seen_at TIMESTAMP WITH TIME ZONE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS audit_events (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID,
		actor_user_id UUID,
		event_type VARCHAR(80) NOT NULL,
		subject_type VARCHAR(80) NOT NULL,
		subject_id UUID NOT NULL,
		metadata JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_profiles_team_id ON profiles(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lessons_team_id ON lessons(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_program_assignments_template_id ON program_assignments(template_id)`,
	`CREATE INDEX IF NOT EXISTS idx_program_enrollments_template_id ON program_enrollments(template_id)`,
	`CREATE INDEX IF NOT EXISTS idx_program_submissions_enrollment_id ON program_submissions(enrollment_id)`,
	`CREATE INDEX IF NOT EXISTS idx_claim_tokens_player_id ON claim_tokens(player_id)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_team_id ON videos(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_events_subject ON audit_events(subject_type, subject_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
