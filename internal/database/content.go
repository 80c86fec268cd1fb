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

func contentTable(kind models.ContentKind) (string, error) {
	switch kind {
	case models.ContentVideo:
		return "videos", nil
	case models.ContentComment:
		return "comments", nil
	}
	return "", fmt.Errorf("unknown content kind %q", kind)
}

// lockContent loads a team content row for update and checks that the actor
// owns it or coaches the team.
func lockContent(ctx context.Context, tx pgx.Tx, op string, actor store.Actor, kind models.ContentKind, id uuid.UUID) (*models.ContentItem, error) {
	table, err := contentTable(kind)
	if err != nil {
		return nil, err
	}

	item := models.ContentItem{Kind: kind}
	err = tx.QueryRow(ctx, `
		SELECT id, team_id, owner_user_id, deleted_at, deleted_by_user_id
		FROM `+table+` WHERE id = $1 AND team_id = $2
		FOR UPDATE
	`, id, actor.TeamID).Scan(&item.ID, &item.TeamID, &item.OwnerUserID, &item.DeletedAt, &item.DeletedByUserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound(op, string(kind)+" not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", kind, err)
	}
	if !actor.MayModify(item.OwnerUserID) {
		return nil, store.Forbidden(op, "only the owner or a coach can change this "+string(kind))
	}
	return &item, nil
}

// SoftDeleteContent is idempotent; an already deleted item keeps its
// original deletion stamp.
func (s *Store) SoftDeleteContent(ctx context.Context, actor store.Actor, kind models.ContentKind, id uuid.UUID, at time.Time) (*models.ContentItem, error) {
	var item *models.ContentItem
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		item, err = lockContent(ctx, tx, store.OpSoftDeleteContent, actor, kind, id)
		if err != nil {
			return err
		}
		if item.IsDeleted() {
			return nil
		}

		table, _ := contentTable(kind)
		_, err = tx.Exec(ctx, `
			UPDATE `+table+` SET deleted_at = $2, deleted_by_user_id = $3
			WHERE id = $1
		`, id, at, actor.UserID)
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", kind, err)
		}
		by := actor.UserID
		item.DeletedAt = &at
		item.DeletedByUserID = &by
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Store) RestoreContent(ctx context.Context, actor store.Actor, kind models.ContentKind, id uuid.UUID) (*models.ContentItem, error) {
	var item *models.ContentItem
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		item, err = lockContent(ctx, tx, store.OpRestoreContent, actor, kind, id)
		if err != nil {
			return err
		}

		table, _ := contentTable(kind)
		_, err = tx.Exec(ctx, `
			UPDATE `+table+` SET deleted_at = NULL, deleted_by_user_id = NULL
			WHERE id = $1
		`, id)
		if err != nil {
			return fmt.Errorf("failed to restore %s: %w", kind, err)
		}
		item.DeletedAt = nil
		item.DeletedByUserID = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// TouchVideoSeen advances the caller's watermark for a live team video. The
// watermark never moves backwards.
func (s *Store) TouchVideoSeen(ctx context.Context, actor store.Actor, videoID uuid.UUID, at time.Time) error {
	tag, err := s.db.Pool.Exec(ctx, `
		INSERT INTO video_views (video_id, user_id, last_seen_at)
		SELECT v.id, $2::uuid, $3::timestamptz
		FROM videos v
		WHERE v.id = $1 AND v.team_id = $4 AND v.deleted_at IS NULL
		ON CONFLICT (video_id, user_id) DO UPDATE
		SET last_seen_at = GREATEST(video_views.last_seen_at, EXCLUDED.last_seen_at)
	`, videoID, actor.UserID, at, actor.TeamID)
	if err != nil {
		return fmt.Errorf("failed to touch video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound(store.OpTouchVideoSeen, "video not found")
	}
	return nil
}

func (s *Store) TouchLastSeenFeed(ctx context.Context, actor store.Actor, at time.Time) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO feed_seen (user_id, last_seen_at)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET last_seen_at = GREATEST(feed_seen.last_seen_at, EXCLUDED.last_seen_at)
	`, actor.UserID, at)
	if err != nil {
		return fmt.Errorf("failed to touch feed: %w", err)
	}
	return nil
}
