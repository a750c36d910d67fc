package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"microblog/models"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// JoinInstrumentNames склеивает имена инструментов в строку сводки:
// разделитель ", ", алфавитный порядок, пустой набор дает пустую строку
func JoinInstrumentNames(names []string) string {
	if len(names) == 0 {
		return ""
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

type InstrumentService struct {
	orm *gorm.DB
}

func NewInstrumentService(orm *gorm.DB) *InstrumentService {
	return &InstrumentService{orm: orm}
}

// GetOrCreate возвращает инструмент по имени, создавая его при необходимости
func (s *InstrumentService) GetOrCreate(ctx context.Context, name string) (*models.Instrument, error) {
	var instrument models.Instrument
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Write).
		Where("name = ?", name).First(&instrument).Error
	if err == nil {
		return &instrument, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up instrument: %w", err)
	}

	instrument = models.Instrument{Name: name}
	if err := s.orm.WithContext(ctx).Clauses(dbresolver.Write).Create(&instrument).Error; err != nil {
		return nil, fmt.Errorf("failed to create instrument: %w", err)
	}
	return &instrument, nil
}

// GetByID возвращает инструмент или ErrInstrumentNotFound
func (s *InstrumentService) GetByID(ctx context.Context, id int64) (*models.Instrument, error) {
	var instrument models.Instrument
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Read).First(&instrument, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInstrumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get instrument: %w", err)
	}
	return &instrument, nil
}

// AttachToUser привязывает инструмент к пользователю, повторная привязка - ошибка
func (s *InstrumentService) AttachToUser(ctx context.Context, userID, instrumentID int64) error {
	var count int64
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Read).
		Model(&models.UserInstrument{}).
		Where("user_id = ? AND instrument_id = ?", userID, instrumentID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check user instrument: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("instrument already attached to user")
	}

	err = s.orm.WithContext(ctx).Clauses(dbresolver.Write).Create(&models.UserInstrument{
		UserID:       userID,
		InstrumentID: instrumentID,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to attach instrument: %w", err)
	}
	return nil
}

// GetUserInstrumentNames возвращает имена инструментов пользователя
// в алфавитном порядке. Используется, чтобы один раз получить сводку
// для ленты own
func (s *InstrumentService) GetUserInstrumentNames(ctx context.Context, userID int64) ([]string, error) {
	var names []string
	err := s.orm.WithContext(ctx).Clauses(dbresolver.Read).
		Table("instruments i").
		Joins("JOIN user_instruments ui ON ui.instrument_id = i.id").
		Where("ui.user_id = ?", userID).
		Order("i.name").
		Pluck("i.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user instruments: %w", err)
	}
	return names, nil
}
