package models

import (
	"time"
)

// Message - сообщение ("твит") пользователя. Текст неизменяемый,
// записи только добавляются
type Message struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;index" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName возвращает имя таблицы для модели Message
func (Message) TableName() string {
	return "messages"
}

// Like - отметка "нравится" на сообщении
type Like struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	MessageID int64 `gorm:"index" json:"message_id"`
}

func (Like) TableName() string {
	return "likes"
}

// Subscription - направленная подписка: follower видит сообщения followed
type Subscription struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID int64     `gorm:"index" json:"follower_id"`
	FollowedID int64     `gorm:"index" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
