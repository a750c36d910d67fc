package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"microblog/models"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestParseFeedType(t *testing.T) {
	for _, valid := range []string{"own", "subscriptions", "shared_instruments", "same_country"} {
		ft, err := ParseFeedType(valid)
		require.NoError(t, err)
		require.Equal(t, FeedType(valid), ft)
	}

	_, err := ParseFeedType("trending")
	require.Error(t, err)
}

func TestNormalizePage(t *testing.T) {
	_, _, ok := normalizePage(0, 0)
	require.False(t, ok)

	_, _, ok = normalizePage(-3, 10)
	require.False(t, ok)

	limit, offset, ok := normalizePage(5, -7)
	require.True(t, ok)
	require.Equal(t, 5, limit)
	require.Equal(t, 0, offset)

	limit, offset, ok = normalizePage(5, 12)
	require.True(t, ok)
	require.Equal(t, 5, limit)
	require.Equal(t, 12, offset)
}

func TestGetFeedDispatch(t *testing.T) {
	orm := newTestDB(t)
	repo := NewGormMessageRepository(orm)
	feed := NewFeedService(repo, logrus.New())
	ctx := context.Background()

	alice := createTestUser(t, orm, "alice", "FR", "guitar")
	bob := createTestUser(t, orm, "bob", "DE", "guitar")
	carol := createTestUser(t, orm, "carol", "FR")
	createTestSubscription(t, orm, alice.ID, carol.ID)

	a1 := createTestMessage(t, orm, alice.ID, testTime(10), "mine")
	b1 := createTestMessage(t, orm, bob.ID, testTime(20), "shared guitar")
	c1 := createTestMessage(t, orm, carol.ID, testTime(30), "followed")

	own := feed.GetFeed(ctx, alice, FeedOwn, []string{"guitar"}, 10, 0)
	require.Equal(t, []int64{a1}, messageIDs(own))
	require.Equal(t, "guitar", own[0].Instruments)
	require.Equal(t, "alice", own[0].Login)

	subs := feed.GetFeed(ctx, alice, FeedSubscriptions, nil, 10, 0)
	require.Equal(t, []int64{c1}, messageIDs(subs))

	shared := feed.GetFeed(ctx, alice, FeedSharedInstruments, nil, 10, 0)
	require.Equal(t, []int64{b1}, messageIDs(shared))

	country := feed.GetFeed(ctx, alice, FeedSameCountry, nil, 10, 0)
	require.Equal(t, []int64{c1, a1}, messageIDs(country))
}

func TestGetFeedAnonymousUser(t *testing.T) {
	orm := newTestDB(t)
	feed := NewFeedService(NewGormMessageRepository(orm), logrus.New())

	tweets := feed.GetFeed(context.Background(), nil, FeedSubscriptions, nil, 10, 0)
	require.NotNil(t, tweets)
	require.Empty(t, tweets)
}

func TestGetFeedUnknownType(t *testing.T) {
	orm := newTestDB(t)
	logger, hook := test.NewNullLogger()
	feed := NewFeedService(NewGormMessageRepository(orm), logger)
	user := createTestUser(t, orm, "alice", "FR")

	tweets := feed.GetFeed(context.Background(), user, FeedType("trending"), nil, 10, 0)
	require.Empty(t, tweets)
	require.Len(t, hook.Entries, 1)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

// failingRepository имитирует недоступное хранилище
type failingRepository struct{}

var errConnRefused = errors.New("connection refused")

func (failingRepository) CreateMessage(ctx context.Context, authorID int64, createdAt time.Time, text string) (int64, error) {
	return 0, &StorageError{Op: "create message", Err: errConnRefused}
}

func (failingRepository) GetOwnMessages(ctx context.Context, user *models.User, instruments string, limit, offset int) ([]models.Tweet, error) {
	return nil, &StorageError{Op: "get own messages", Err: errConnRefused}
}

func (failingRepository) GetSubscriptionMessages(ctx context.Context, userID int64, limit, offset int) ([]models.Tweet, error) {
	return nil, &StorageError{Op: "get subscription messages", Err: errConnRefused}
}

func (failingRepository) GetSharedInstrumentMessages(ctx context.Context, userID int64, limit, offset int) ([]models.Tweet, error) {
	return nil, &StorageError{Op: "get shared instrument messages", Err: errConnRefused}
}

func (failingRepository) GetSameCountryMessages(ctx context.Context, userID int64, limit, offset int) ([]models.Tweet, error) {
	return nil, &StorageError{Op: "get same country messages", Err: errConnRefused}
}

func TestGetFeedSwallowsStorageErrors(t *testing.T) {
	logger, hook := test.NewNullLogger()
	feed := NewFeedService(failingRepository{}, logger)
	user := &models.User{ID: 42, Login: "alice"}

	for _, ft := range []FeedType{FeedOwn, FeedSubscriptions, FeedSharedInstruments, FeedSameCountry} {
		hook.Reset()

		tweets := feed.GetFeed(context.Background(), user, ft, nil, 10, 0)
		require.NotNil(t, tweets)
		require.Empty(t, tweets)

		// Ошибка не пробрасывается, но фиксируется со структурными полями
		require.Len(t, hook.Entries, 1)
		entry := hook.LastEntry()
		require.Equal(t, logrus.ErrorLevel, entry.Level)
		require.Equal(t, ft, entry.Data["feed_type"])
		require.Equal(t, int64(42), entry.Data["user_id"])

		var storageErr *StorageError
		require.ErrorAs(t, entry.Data[logrus.ErrorKey].(error), &storageErr)
		require.ErrorIs(t, storageErr, errConnRefused)
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	err := &StorageError{Op: "get own messages", Err: errConnRefused}
	require.ErrorIs(t, err, errConnRefused)
	require.Contains(t, err.Error(), "get own messages")
}
