package db

import (
	"fmt"

	"microblog/models"

	"gorm.io/gorm"
)

// Индексы под запросы ленты. AutoMigrate создает таблицы, а составные
// индексы накатываем отдельно и фиксируем в таблице migrations,
// чтобы не выполнять повторно.
var feedIndexes = []struct {
	name string
	sql  string
}{
	{
		"idx_messages_user_id_created_at",
		`CREATE INDEX IF NOT EXISTS idx_messages_user_id_created_at ON messages (user_id, created_at);`,
	},
	{
		"idx_messages_created_at_id",
		`CREATE INDEX IF NOT EXISTS idx_messages_created_at_id ON messages (created_at, id);`,
	},
	{
		"idx_likes_message_id",
		`CREATE INDEX IF NOT EXISTS idx_likes_message_id ON likes (message_id);`,
	},
	{
		"idx_subscriptions_follower_id",
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_follower_id ON subscriptions (follower_id);`,
	},
	{
		"idx_user_instruments_pair",
		`CREATE INDEX IF NOT EXISTS idx_user_instruments_pair ON user_instruments (instrument_id, user_id);`,
	},
	{
		"idx_users_country",
		`CREATE INDEX IF NOT EXISTS idx_users_country ON users (country);`,
	},
}

// ApplyFeedIndexes накатывает индексы для запросов ленты
func ApplyFeedIndexes(db *gorm.DB) error {
	for _, m := range feedIndexes {
		var applied int64
		err := db.Model(&models.Migration{}).Where("name = ?", m.name).Count(&applied).Error
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.name, err)
		}
		if applied > 0 {
			continue
		}

		if err := db.Exec(m.sql).Error; err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.name, err)
		}

		if err := db.Create(&models.Migration{Name: m.name}).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.name, err)
		}
	}
	return nil
}
