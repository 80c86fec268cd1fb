package memstore

import (
	"context"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
)

func (s *Store) SoftDeleteContent(ctx context.Context, actor store.Actor, kind models.ContentKind, id uuid.UUID, at time.Time) (*models.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.ownedContent(store.OpSoftDeleteContent, actor, kind, id)
	if err != nil {
		return nil, err
	}
	if item.DeletedAt == nil {
		deletedAt := at
		by := actor.UserID
		item.DeletedAt = &deletedAt
		item.DeletedByUserID = &by
	}
	return copyContent(item), nil
}

func (s *Store) RestoreContent(ctx context.Context, actor store.Actor, kind models.ContentKind, id uuid.UUID) (*models.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.ownedContent(store.OpRestoreContent, actor, kind, id)
	if err != nil {
		return nil, err
	}
	item.DeletedAt = nil
	item.DeletedByUserID = nil
	return copyContent(item), nil
}

func (s *Store) TouchVideoSeen(ctx context.Context, actor store.Actor, videoID uuid.UUID, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.content[contentKey{kind: models.ContentVideo, id: videoID}]
	if !ok || item.TeamID != actor.TeamID || item.IsDeleted() {
		return store.NotFound(store.OpTouchVideoSeen, "video not found")
	}
	key := viewKey{videoID: videoID, userID: actor.UserID}
	if prev, ok := s.videoViews[key]; !ok || at.After(prev) {
		s.videoViews[key] = at
	}
	return nil
}

func (s *Store) TouchLastSeenFeed(ctx context.Context, actor store.Actor, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.feedSeen[actor.UserID]; !ok || at.After(prev) {
		s.feedSeen[actor.UserID] = at
	}
	return nil
}

// ownedContent must be called with s.mu held.
func (s *Store) ownedContent(op string, actor store.Actor, kind models.ContentKind, id uuid.UUID) (*models.ContentItem, error) {
	item, ok := s.content[contentKey{kind: kind, id: id}]
	if !ok || item.TeamID != actor.TeamID {
		return nil, store.NotFound(op, string(kind)+" not found")
	}
	if !actor.MayModify(item.OwnerUserID) {
		return nil, store.Forbidden(op, "only the owner or a coach can change this "+string(kind))
	}
	return item, nil
}

func copyContent(c *models.ContentItem) *models.ContentItem {
	cp := *c
	if c.DeletedAt != nil {
		at := *c.DeletedAt
		cp.DeletedAt = &at
	}
	if c.DeletedByUserID != nil {
		id := *c.DeletedByUserID
		cp.DeletedByUserID = &id
	}
	return &cp
}
