package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"microblog/models"

	"golang.org/x/crypto/argon2"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type UserService struct {
	orm *gorm.DB
}

func NewUserService(orm *gorm.DB) *UserService {
	return &UserService{orm: orm}
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

func verifyPassword(password, stored string) error {
	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return errors.New("invalid password format")
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	if hex.EncodeToString(hash) != parts[1] {
		return errors.New("invalid password")
	}
	return nil
}

// Register регистрирует пользователя. Пароль в user.Password приходит
// открытым текстом и заменяется хешем перед сохранением
func (s *UserService) Register(ctx context.Context, user *models.User) (int64, error) {
	if user.Login == "" || user.Password == "" {
		return 0, errors.New("login and password are required")
	}

	var alreadyExists int64
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&models.User{}).Where("login = ?", user.Login).Count(&alreadyExists).Error
	if err != nil {
		return 0, fmt.Errorf("failed to check login: %w", err)
	}
	if alreadyExists > 0 {
		return 0, errors.New("user already exists")
	}

	passwordHash, err := hashPassword(user.Password)
	if err != nil {
		return 0, err
	}
	user.Password = passwordHash

	if err := s.orm.WithContext(ctx).Clauses(dbresolver.Write).Create(user).Error; err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return user.ID, nil
}

// Login проверяет пароль и выдает новый токен. Старые токены пользователя
// отзываются
func (s *UserService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.GetByLogin(ctx, login)
	if err != nil {
		return "", err
	}
	if err := verifyPassword(password, user.Password); err != nil {
		return "", err
	}

	if err := s.Logout(ctx, user.ID); err != nil {
		return "", err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)

	err = s.orm.WithContext(ctx).Clauses(dbresolver.Write).Create(&models.UserToken{
		UserID: user.ID,
		Token:  token,
	}).Error
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	CacheToken(ctx, token, user.ID)
	return token, nil
}

// Logout отзывает все токены пользователя
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	var tokens []models.UserToken
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Write).
		Where("user_id = ?", userID).Find(&tokens).Error
	if err != nil {
		return fmt.Errorf("failed to list tokens: %w", err)
	}
	for _, t := range tokens {
		DropToken(ctx, t.Token)
	}

	err = s.orm.WithContext(ctx).Clauses(dbresolver.Write).
		Where("user_id = ?", userID).Delete(&models.UserToken{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}

// ResolveToken находит пользователя по токену: сначала в Redis,
// при промахе - в БД с обратным прогревом кеша
func (s *UserService) ResolveToken(ctx context.Context, token string) (int64, error) {
	if userID, ok := LookupToken(ctx, token); ok {
		return userID, nil
	}

	var userToken models.UserToken
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Read).
		Where("token = ?", token).First(&userToken).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve token: %w", err)
	}

	CacheToken(ctx, token, userToken.UserID)
	return userToken.UserID, nil
}

// GetByID возвращает пользователя или ErrUserNotFound
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Read).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByLogin возвращает пользователя или ErrUserNotFound
func (s *UserService) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Read).
		Where("login = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateProfile обновляет имя, фамилию и страну пользователя
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, country string) error {
	result := s.orm.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
			"country":    country,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
