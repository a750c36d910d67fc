package services

import (
	"context"
	"fmt"

	"microblog/models"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type SubscriptionService struct {
	orm *gorm.DB
}

func NewSubscriptionService(orm *gorm.DB) *SubscriptionService {
	return &SubscriptionService{orm: orm}
}

// Subscribe подписывает followerID на followedID
func (s *SubscriptionService) Subscribe(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return fmt.Errorf("cannot subscribe to yourself")
	}

	// Проверяем, что оба пользователя существуют
	var userCount int64
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Read).
		Model(&models.User{}).Where("id IN (?)", []int64{followerID, followedID}).
		Count(&userCount).Error
	if err != nil {
		return fmt.Errorf("error checking users: %w", err)
	}
	if userCount != 2 {
		return fmt.Errorf("one or both users do not exist")
	}

	// Проверяем, что подписки еще нет
	var existing int64
	err = s.orm.WithContext(ctx).Clauses(dbresolver.Read).
		Model(&models.Subscription{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&existing).Error
	if err != nil {
		return fmt.Errorf("error checking subscription: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("subscription already exists")
	}

	err = s.orm.WithContext(ctx).Clauses(dbresolver.Write).Create(&models.Subscription{
		FollowerID: followerID,
		FollowedID: followedID,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// Unsubscribe удаляет подписку
func (s *SubscriptionService) Unsubscribe(ctx context.Context, followerID, followedID int64) error {
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Write).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Subscription{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

// GetSubscriptions возвращает пользователей, на которых подписан userID
func (s *SubscriptionService) GetSubscriptions(ctx context.Context, userID int64) ([]models.User, error) {
	var followed []models.User
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Read).
		Table("users u").
		Joins("JOIN subscriptions s ON s.followed_id = u.id").
		Where("s.follower_id = ?", userID).
		Select("u.id, u.login, u.first_name, u.last_name, u.country, u.created_at").
		Find(&followed).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}
	return followed, nil
}
