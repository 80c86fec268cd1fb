package services

import (
	"testing"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/events"
	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentService_SoftDelete_ByOwner(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewContentService(f.deps)
	videoID := f.store.AddContent(models.ContentVideo, f.team.ID, f.playerID)

	item, err := svc.SoftDelete(as(f.playerID), models.ContentVideo, videoID)
	require.NoError(t, err)
	require.NotNil(t, item.DeletedAt)
	assert.Equal(t, f.clock(), *item.DeletedAt)
	assert.Equal(t, f.playerID, *item.DeletedByUserID)

	deletedAt := *item.DeletedAt
	f.advance(time.Hour)
	again, err := svc.SoftDelete(as(f.coachID), models.ContentVideo, videoID)
	require.NoError(t, err)
	assert.Equal(t, deletedAt, *again.DeletedAt)
	assert.Equal(t, f.playerID, *again.DeletedByUserID)
}

func TestContentService_SoftDelete_ByCoach(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewContentService(f.deps)
	commentID := f.store.AddContent(models.ContentComment, f.team.ID, f.playerID)

	item, err := svc.SoftDelete(as(f.coachID), models.ContentComment, commentID)

	require.NoError(t, err)
	assert.True(t, item.IsDeleted())
	assert.Equal(t, []string{events.ContentDeleted}, f.sink.types())
}

func TestContentService_SoftDelete_Rejections(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewContentService(f.deps)
	videoID := f.store.AddContent(models.ContentVideo, f.team.ID, f.playerID)
	other := f.addPlayer("Jo Park")

	_, err := svc.SoftDelete(as(other), models.ContentVideo, videoID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.SoftDelete(as(f.playerID), "photo", videoID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SoftDelete(as(f.playerID), models.ContentComment, videoID)
	assert.ErrorIs(t, err, ErrNotFound)

	item, _ := f.store.Content(models.ContentVideo, videoID)
	assert.False(t, item.IsDeleted())
}

func TestContentService_Restore(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewContentService(f.deps)
	videoID := f.store.AddContent(models.ContentVideo, f.team.ID, f.playerID)
	_, err := svc.SoftDelete(as(f.playerID), models.ContentVideo, videoID)
	require.NoError(t, err)

	item, err := svc.Restore(as(f.playerID), models.ContentVideo, videoID)

	require.NoError(t, err)
	assert.Nil(t, item.DeletedAt)
	assert.Nil(t, item.DeletedByUserID)
	assert.Equal(t, []string{events.ContentDeleted, events.ContentRestored}, f.sink.types())
}

func TestContentService_TouchSeen_Monotonic(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewContentService(f.deps)
	videoID := f.store.AddContent(models.ContentVideo, f.team.ID, f.coachID)

	f.advance(time.Hour)
	require.NoError(t, svc.TouchSeen(as(f.playerID), videoID))
	later := f.clock()

	f.advance(-30 * time.Minute)
	require.NoError(t, svc.TouchSeen(as(f.playerID), videoID))

	seen, ok := f.store.VideoSeenAt(videoID, f.playerID)
	require.True(t, ok)
	assert.Equal(t, later, seen)
}

func TestContentService_TouchSeen_DeletedVideo(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewContentService(f.deps)
	videoID := f.store.AddContent(models.ContentVideo, f.team.ID, f.coachID)
	_, err := svc.SoftDelete(as(f.coachID), models.ContentVideo, videoID)
	require.NoError(t, err)

	err = svc.TouchSeen(as(f.playerID), videoID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.TouchSeen(as(f.playerID), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, ok := f.store.VideoSeenAt(videoID, f.playerID)
	assert.False(t, ok)
}

func TestContentService_TouchLastSeenFeed_Monotonic(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewContentService(f.deps)

	require.NoError(t, svc.TouchLastSeenFeed(as(f.playerID)))
	first := f.clock()
	f.advance(-time.Minute)
	require.NoError(t, svc.TouchLastSeenFeed(as(f.playerID)))

	seen, ok := f.store.FeedSeenAt(f.playerID)
	require.True(t, ok)
	assert.Equal(t, first, seen)

	f.advance(time.Hour)
	require.NoError(t, svc.TouchLastSeenFeed(as(f.playerID)))
	seen, _ = f.store.FeedSeenAt(f.playerID)
	assert.Equal(t, f.clock(), seen)
}

func TestContentService_RequiresActiveCaller(t *testing.T) {
	f := newTeamFixture(t)
	svc := NewContentService(f.deps)
	roster := NewRosterService(f.deps, time.Hour)
	_, err := roster.SetPlayerActive(as(f.coachID), f.playerID, false)
	require.NoError(t, err)

	err = svc.TouchLastSeenFeed(as(f.playerID))

	assert.ErrorIs(t, err, ErrForbidden)
}
