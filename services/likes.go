package services

import (
	"context"
	"fmt"

	"microblog/models"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type LikeService struct {
	orm *gorm.DB
}

func NewLikeService(orm *gorm.DB) *LikeService {
	return &LikeService{orm: orm}
}

// AddLike добавляет лайк сообщению и возвращает id лайка
func (s *LikeService) AddLike(ctx context.Context, messageID int64) (int64, error) {
	var exists int64
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Read).
		Model(&models.Message{}).Where("id = ?", messageID).Count(&exists).Error
	if err != nil {
		return 0, fmt.Errorf("error checking message: %w", err)
	}
	if exists == 0 {
		return 0, fmt.Errorf("message does not exist")
	}

	like := &models.Like{MessageID: messageID}
	if err := s.orm.WithContext(ctx).Clauses(dbresolver.Write).Create(like).Error; err != nil {
		return 0, fmt.Errorf("failed to create like: %w", err)
	}
	return like.ID, nil
}

// CountLikes возвращает количество лайков сообщения
func (s *LikeService) CountLikes(ctx context.Context, messageID int64) (int64, error) {
	var count int64
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Read).
		Model(&models.Like{}).Where("message_id = ?", messageID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
