package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddLikeAndCount(t *testing.T) {
	orm := newTestDB(t)
	svc := NewLikeService(orm)
	ctx := context.Background()

	user := createTestUser(t, orm, "alice", "FR")
	messageID := createTestMessage(t, orm, user.ID, testTime(1), "msg")

	likeID, err := svc.AddLike(ctx, messageID)
	require.NoError(t, err)
	require.NotZero(t, likeID)

	// Лайки не дедуплицируются
	_, err = svc.AddLike(ctx, messageID)
	require.NoError(t, err)

	count, err := svc.CountLikes(ctx, messageID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestAddLikeMissingMessage(t *testing.T) {
	orm := newTestDB(t)
	svc := NewLikeService(orm)

	_, err := svc.AddLike(context.Background(), 9999)
	require.Error(t, err)
}
