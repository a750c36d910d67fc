package services

import (
	"context"
	"time"

	"microblog/models"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// MessageRepository - пять типизированных операций над сообщениями:
// создание и четыре стратегии выборки ленты. Построение запросов -
// внутреннее дело реализации
type MessageRepository interface {
	CreateMessage(ctx context.Context, authorID int64, createdAt time.Time, text string) (int64, error)
	GetOwnMessages(ctx context.Context, user *models.User, instruments string, limit, offset int) ([]models.Tweet, error)
	GetSubscriptionMessages(ctx context.Context, userID int64, limit, offset int) ([]models.Tweet, error)
	GetSharedInstrumentMessages(ctx context.Context, userID int64, limit, offset int) ([]models.Tweet, error)
	GetSameCountryMessages(ctx context.Context, userID int64, limit, offset int) ([]models.Tweet, error)
}

// Счетчик лайков считается коррелированным подзапросом в том же запросе,
// что и сами сообщения - никаких дополнительных round-trip на строку
const likeCountExpr = "(SELECT COUNT(*) FROM likes l WHERE l.message_id = m.id) AS likes"

type GormMessageRepository struct {
	orm *gorm.DB
}

func NewGormMessageRepository(orm *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{orm: orm}
}

// read возвращает подключение для чтения (слейвы)
func (r *GormMessageRepository) read(ctx context.Context) *gorm.DB {
	return r.orm.WithContext(ctx).Clauses(dbresolver.Read)
}

// write возвращает подключение для записи (мастер)
func (r *GormMessageRepository) write(ctx context.Context) *gorm.DB {
	return r.orm.WithContext(ctx).Clauses(dbresolver.Write)
}

// normalizePage приводит параметры страницы к контракту:
// limit <= 0 дает пустую страницу, отрицательный offset считается нулем
func normalizePage(limit, offset int) (int, int, bool) {
	if limit <= 0 {
		return 0, 0, false
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset, true
}

// instrumentSummaryExpr возвращает выражение для сводки инструментов автора:
// имена через ", " в алфавитном порядке, пустая строка если инструментов нет.
// Синтаксис упорядоченной агрегации у диалектов разный
func (r *GormMessageRepository) instrumentSummaryExpr() string {
	if r.orm.Dialector.Name() == "postgres" {
		return "COALESCE((SELECT string_agg(i.name, ', ' ORDER BY i.name) " +
			"FROM instruments i JOIN user_instruments ui ON ui.instrument_id = i.id " +
			"WHERE ui.user_id = m.user_id), '')"
	}
	return "COALESCE((SELECT group_concat(name, ', ') FROM " +
		"(SELECT i.name AS name FROM instruments i JOIN user_instruments ui ON ui.instrument_id = i.id " +
		"WHERE ui.user_id = m.user_id ORDER BY i.name)), '')"
}

func (r *GormMessageRepository) feedSelect() string {
	return "m.id AS message_id, m.user_id, u.login, m.text, m.created_at, " +
		likeCountExpr + ", " + r.instrumentSummaryExpr() + " AS instruments"
}

// CreateMessage сохраняет сообщение и возвращает сгенерированный id
func (r *GormMessageRepository) CreateMessage(ctx context.Context, authorID int64, createdAt time.Time, text string) (int64, error) {
	msg := &models.Message{
		UserID:    authorID,
		Text:      text,
		CreatedAt: createdAt,
	}
	if err := r.write(ctx).Create(msg).Error; err != nil {
		return 0, &StorageError{Op: "create message", Err: err}
	}
	return msg.ID, nil
}

// GetOwnMessages возвращает сообщения самого пользователя. Логин и сводка
// инструментов одинаковы для всех строк, поэтому не вычисляются в запросе:
// логин берется из уже известного пользователя, сводку передает вызывающий
func (r *GormMessageRepository) GetOwnMessages(ctx context.Context, user *models.User, instruments string, limit, offset int) ([]models.Tweet, error) {
	limit, offset, ok := normalizePage(limit, offset)
	if !ok {
		return []models.Tweet{}, nil
	}

	var tweets []models.Tweet
	err := r.read(ctx).
		Table("messages m").
		Select("m.id AS message_id, m.user_id, m.text, m.created_at, " + likeCountExpr).
		Where("m.user_id = ?", user.ID).
		Order("m.created_at DESC, m.id DESC").
		Limit(limit).Offset(offset).
		Scan(&tweets).Error
	if err != nil {
		return nil, &StorageError{Op: "get own messages", Err: err}
	}

	for i := range tweets {
		tweets[i].Login = user.Login
		tweets[i].Instruments = instruments
	}
	return ensureTweets(tweets), nil
}

// GetSubscriptionMessages возвращает сообщения пользователей,
// на которых подписан userID
func (r *GormMessageRepository) GetSubscriptionMessages(ctx context.Context, userID int64, limit, offset int) ([]models.Tweet, error) {
	limit, offset, ok := normalizePage(limit, offset)
	if !ok {
		return []models.Tweet{}, nil
	}

	var tweets []models.Tweet
	err := r.read(ctx).
		Table("messages m").
		Select(r.feedSelect()).
		Joins("JOIN subscriptions s ON s.followed_id = m.user_id").
		Joins("JOIN users u ON u.id = m.user_id").
		Where("s.follower_id = ?", userID).
		Order("m.created_at DESC, m.id DESC").
		Limit(limit).Offset(offset).
		Scan(&tweets).Error
	if err != nil {
		return nil, &StorageError{Op: "get subscription messages", Err: err}
	}
	return ensureTweets(tweets), nil
}

// GetSharedInstrumentMessages возвращает сообщения авторов, у которых есть
// хотя бы один общий инструмент с userID. Собственные сообщения пользователя
// не считаются "общими" и исключаются. EXISTS вместо join'а по membership,
// чтобы сообщение не дублировалось при нескольких общих инструментах
func (r *GormMessageRepository) GetSharedInstrumentMessages(ctx context.Context, userID int64, limit, offset int) ([]models.Tweet, error) {
	limit, offset, ok := normalizePage(limit, offset)
	if !ok {
		return []models.Tweet{}, nil
	}

	var tweets []models.Tweet
	err := r.read(ctx).
		Table("messages m").
		Select(r.feedSelect()).
		Joins("JOIN users u ON u.id = m.user_id").
		Where("m.user_id <> ?", userID).
		Where("EXISTS (SELECT 1 FROM user_instruments ui1 "+
			"JOIN user_instruments ui2 ON ui2.instrument_id = ui1.instrument_id "+
			"WHERE ui1.user_id = m.user_id AND ui2.user_id = ?)", userID).
		Order("m.created_at DESC, m.id DESC").
		Limit(limit).Offset(offset).
		Scan(&tweets).Error
	if err != nil {
		return nil, &StorageError{Op: "get shared instrument messages", Err: err}
	}
	return ensureTweets(tweets), nil
}

// GetSameCountryMessages возвращает сообщения авторов из той же страны,
// что и userID. Сравнение строгое, и сам пользователь под него подпадает -
// его сообщения попадают в выборку
func (r *GormMessageRepository) GetSameCountryMessages(ctx context.Context, userID int64, limit, offset int) ([]models.Tweet, error) {
	limit, offset, ok := normalizePage(limit, offset)
	if !ok {
		return []models.Tweet{}, nil
	}

	var tweets []models.Tweet
	err := r.read(ctx).
		Table("messages m").
		Select(r.feedSelect()).
		Joins("JOIN users u ON u.id = m.user_id").
		Joins("JOIN users me ON me.country = u.country").
		Where("me.id = ?", userID).
		Order("m.created_at DESC, m.id DESC").
		Limit(limit).Offset(offset).
		Scan(&tweets).Error
	if err != nil {
		return nil, &StorageError{Op: "get same country messages", Err: err}
	}
	return ensureTweets(tweets), nil
}

func ensureTweets(tweets []models.Tweet) []models.Tweet {
	if tweets == nil {
		return []models.Tweet{}
	}
	return tweets
}
