package models

import (
	"time"

	"github.com/google/uuid"
)

type ContentKind string

const (
	ContentVideo   ContentKind = "video"
	ContentComment ContentKind = "comment"
)

func (k ContentKind) Valid() bool {
	return k == ContentVideo || k == ContentComment
}

// ContentItem is the lifecycle view of a shared video or comment.
type ContentItem struct {
	ID              uuid.UUID   `json:"id"`
	Kind            ContentKind `json:"kind"`
	TeamID          uuid.UUID   `json:"team_id"`
	OwnerUserID     uuid.UUID   `json:"owner_user_id"`
	DeletedAt       *time.Time  `json:"deleted_at,omitempty"`
	DeletedByUserID *uuid.UUID  `json:"deleted_by_user_id,omitempty"`
}

func (c *ContentItem) IsDeleted() bool {
	return c.DeletedAt != nil
}
