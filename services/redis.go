package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"microblog/config"

	"github.com/go-redis/redis/v8"
)

const (
	TOKEN_CACHE_TTL  = 24 * time.Hour // TTL для кеша токенов
	TOKEN_KEY_PREFIX = "auth_token:"  // Префикс для ключей токенов в Redis
)

var RedisClient *redis.Client

func InitRedis() error {
	if config.AppConfig == nil {
		return fmt.Errorf("AppConfig is not loaded")
	}

	redisConfig := config.AppConfig.Redis
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisConfig.Host, redisConfig.Port),
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	// Тест соединения
	_, err := RedisClient.Ping(context.Background()).Result()
	if err != nil {
		RedisClient = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return nil
}

func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// CacheToken кеширует токен сессии. Без Redis работаем через БД
func CacheToken(ctx context.Context, token string, userID int64) {
	if RedisClient == nil {
		return
	}
	RedisClient.Set(ctx, TOKEN_KEY_PREFIX+token, userID, TOKEN_CACHE_TTL)
}

// LookupToken ищет токен в кеше
func LookupToken(ctx context.Context, token string) (int64, bool) {
	if RedisClient == nil {
		return 0, false
	}
	val, err := RedisClient.Get(ctx, TOKEN_KEY_PREFIX+token).Result()
	if err != nil {
		return 0, false
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// DropToken убирает токен из кеша
func DropToken(ctx context.Context, token string) {
	if RedisClient == nil {
		return
	}
	RedisClient.Del(ctx, TOKEN_KEY_PREFIX+token)
}
