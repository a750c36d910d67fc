package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"microblog/db"
	"microblog/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// newTestDB поднимает отдельную in-memory SQLite базу на тест
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:feedtest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	orm, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := orm.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, orm.AutoMigrate(
		&models.User{}, &models.Migration{}, &models.UserToken{},
		&models.Instrument{}, &models.UserInstrument{},
		&models.Subscription{}, &models.Message{}, &models.Like{},
	))
	require.NoError(t, db.ApplyFeedIndexes(orm))

	return orm
}

func createTestUser(t *testing.T, orm *gorm.DB, login, country string, instruments ...string) *models.User {
	t.Helper()

	user := &models.User{
		Login:     login,
		Password:  "testpassword",
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Country:   country,
	}
	require.NoError(t, orm.Create(user).Error)

	for _, name := range instruments {
		attachTestInstrument(t, orm, user.ID, name)
	}
	return user
}

func attachTestInstrument(t *testing.T, orm *gorm.DB, userID int64, name string) {
	t.Helper()

	var instrument models.Instrument
	err := orm.Where("name = ?", name).First(&instrument).Error
	if err != nil {
		require.ErrorIs(t, err, gorm.ErrRecordNotFound)
		instrument = models.Instrument{Name: name}
		require.NoError(t, orm.Create(&instrument).Error)
	}
	require.NoError(t, orm.Create(&models.UserInstrument{
		UserID:       userID,
		InstrumentID: instrument.ID,
	}).Error)
}

func createTestMessage(t *testing.T, orm *gorm.DB, userID int64, createdAt time.Time, text string) int64 {
	t.Helper()

	msg := &models.Message{UserID: userID, Text: text, CreatedAt: createdAt}
	require.NoError(t, orm.Create(msg).Error)
	return msg.ID
}

func createTestSubscription(t *testing.T, orm *gorm.DB, followerID, followedID int64) {
	t.Helper()
	require.NoError(t, orm.Create(&models.Subscription{
		FollowerID: followerID,
		FollowedID: followedID,
	}).Error)
}

func likeTestMessage(t *testing.T, orm *gorm.DB, messageID int64) {
	t.Helper()
	require.NoError(t, orm.Create(&models.Like{MessageID: messageID}).Error)
}

func messageIDs(tweets []models.Tweet) []int64 {
	ids := make([]int64, 0, len(tweets))
	for _, tw := range tweets {
		ids = append(ids, tw.MessageID)
	}
	return ids
}

// testTime дает детерминированные метки времени с шагом в минуту
func testTime(minute int) time.Time {
	return time.Date(2024, 5, 1, 12, minute, 0, 0, time.UTC)
}
