package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserID(t *testing.T) {
	userID := uuid.New()

	got, ok := UserID(WithUserID(context.Background(), userID))

	assert.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestUserID_Missing(t *testing.T) {
	_, ok := UserID(context.Background())
	assert.False(t, ok)

	_, ok = UserID(WithUserID(context.Background(), uuid.Nil))
	assert.False(t, ok)
}
