package services

import (
	"context"
	"fmt"

	"microblog/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// FeedType - измерение ленты, определяет предикат отбора сообщений
type FeedType string

const (
	FeedOwn               FeedType = "own"
	FeedSubscriptions     FeedType = "subscriptions"
	FeedSharedInstruments FeedType = "shared_instruments"
	FeedSameCountry       FeedType = "same_country"
)

// ParseFeedType разбирает значение из запроса в FeedType
func ParseFeedType(s string) (FeedType, error) {
	switch FeedType(s) {
	case FeedOwn, FeedSubscriptions, FeedSharedInstruments, FeedSameCountry:
		return FeedType(s), nil
	}
	return "", fmt.Errorf("unknown feed type: %q", s)
}

var (
	feedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of feed requests",
		},
		[]string{"feed_type"},
	)

	feedStorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_storage_errors_total",
			Help: "Total number of storage failures swallowed by the feed",
		},
		[]string{"feed_type"},
	)
)

// FeedService собирает ленту: выбирает стратегию по измерению,
// вызывает репозиторий с пагинацией и возвращает упорядоченную страницу.
// Репозиторий и логгер передаются в конструктор
type FeedService struct {
	repo MessageRepository
	log  *logrus.Logger
}

func NewFeedService(repo MessageRepository, log *logrus.Logger) *FeedService {
	return &FeedService{repo: repo, log: log}
}

// GetFeed возвращает страницу ленты для пользователя. Для неаутентифицированного
// (nil) пользователя лента пуста. Ошибка хранилища тоже дает пустую ленту:
// читающий путь не падает, ошибка уходит в лог и метрики.
// ownInstruments - заранее известные инструменты пользователя, нужны
// только измерению own
func (fs *FeedService) GetFeed(ctx context.Context, user *models.User, feedType FeedType, ownInstruments []string, limit, offset int) []models.Tweet {
	if user == nil {
		return []models.Tweet{}
	}

	feedRequestsTotal.WithLabelValues(string(feedType)).Inc()

	var tweets []models.Tweet
	var err error

	switch feedType {
	case FeedOwn:
		tweets, err = fs.repo.GetOwnMessages(ctx, user, JoinInstrumentNames(ownInstruments), limit, offset)
	case FeedSubscriptions:
		tweets, err = fs.repo.GetSubscriptionMessages(ctx, user.ID, limit, offset)
	case FeedSharedInstruments:
		tweets, err = fs.repo.GetSharedInstrumentMessages(ctx, user.ID, limit, offset)
	case FeedSameCountry:
		tweets, err = fs.repo.GetSameCountryMessages(ctx, user.ID, limit, offset)
	default:
		fs.log.WithField("feed_type", feedType).Warn("unknown feed type requested")
		return []models.Tweet{}
	}

	if err != nil {
		fs.log.WithFields(logrus.Fields{
			"user_id":   user.ID,
			"feed_type": feedType,
		}).WithError(err).Error("feed retrieval failed")
		feedStorageErrors.WithLabelValues(string(feedType)).Inc()
		return []models.Tweet{}
	}

	return tweets
}
