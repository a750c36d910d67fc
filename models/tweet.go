package models

import "time"

// Tweet - строка ленты с дополнительной информацией об авторе.
// Не хранится в БД, собирается запросом
type Tweet struct {
	MessageID   int64     `json:"message_id"`
	UserID      int64     `json:"user_id"`
	Login       string    `json:"login"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
	Likes       int64     `json:"likes"`
	Instruments string    `json:"instruments"`
}

// FeedResponse - ответ API для ленты
type FeedResponse struct {
	Tweets  []Tweet `json:"tweets"`
	HasMore bool    `json:"has_more"`
}
