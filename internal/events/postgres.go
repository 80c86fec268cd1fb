package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dantebozzuti27/baseline-video/internal/database"
)

// PostgresSink appends events to the audit_events table.
type PostgresSink struct {
	db *database.DB
}

func NewPostgresSink(db *database.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

func (s *PostgresSink) Record(ctx context.Context, e Event) error {
	metadata := e.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode event metadata: %w", err)
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO audit_events (team_id, actor_user_id, event_type, subject_type, subject_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.TeamID, e.ActorUserID, e.EventType, e.SubjectType, e.SubjectID, raw, e.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}
