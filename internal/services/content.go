package services

import (
	"context"

	"github.com/dantebozzuti27/baseline-video/internal/events"
	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/google/uuid"
)

type ContentService struct {
	base
}

func NewContentService(deps Deps) *ContentService {
	return &ContentService{base: newBase(deps)}
}

// SoftDelete hides a video or comment. Deleting twice keeps the first
// deletion stamp.
func (s *ContentService) SoftDelete(ctx context.Context, kind models.ContentKind, id uuid.UUID) (*models.ContentItem, error) {
	return run(&s.base, ctx, store.OpSoftDeleteContent, func(ctx context.Context) (*models.ContentItem, error) {
		c, err := s.caller(ctx)
		if err != nil {
			return nil, err
		}
		if !kind.Valid() {
			return nil, invalidInput("kind must be video or comment")
		}

		item, err := s.store.SoftDeleteContent(ctx, c.Actor(), kind, id, s.now())
		if err != nil {
			return nil, err
		}
		s.emit(ctx, teamEvent(c, events.ContentDeleted, string(kind), id, nil))
		return item, nil
	})
}

// Restore clears the deletion fields. View watermarks are not touched.
func (s *ContentService) Restore(ctx context.Context, kind models.ContentKind, id uuid.UUID) (*models.ContentItem, error) {
	return run(&s.base, ctx, store.OpRestoreContent, func(ctx context.Context) (*models.ContentItem, error) {
		c, err := s.caller(ctx)
		if err != nil {
			return nil, err
		}
		if !kind.Valid() {
			return nil, invalidInput("kind must be video or comment")
		}

		item, err := s.store.RestoreContent(ctx, c.Actor(), kind, id)
		if err != nil {
			return nil, err
		}
		s.emit(ctx, teamEvent(c, events.ContentRestored, string(kind), id, nil))
		return item, nil
	})
}

func (s *ContentService) TouchSeen(ctx context.Context, videoID uuid.UUID) error {
	_, err := run(&s.base, ctx, store.OpTouchVideoSeen, func(ctx context.Context) (struct{}, error) {
		c, err := s.caller(ctx)
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.store.TouchVideoSeen(ctx, c.Actor(), videoID, s.now())
	})
	return err
}

func (s *ContentService) TouchLastSeenFeed(ctx context.Context) error {
	_, err := run(&s.base, ctx, store.OpTouchLastSeenFeed, func(ctx context.Context) (struct{}, error) {
		c, err := s.caller(ctx)
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.store.TouchLastSeenFeed(ctx, c.Actor(), s.now())
	})
	return err
}
