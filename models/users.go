package models

import (
	"time"
)

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Login     string    `gorm:"size:60;uniqueIndex" json:"login"`
	Password  string    `gorm:"size:255" json:"-"`
	FirstName string    `gorm:"size:255" json:"first_name"`
	LastName  string    `gorm:"size:255" json:"last_name"`
	Country   string    `gorm:"size:255" json:"country"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Instrument - интерес пользователя (гитара, барабаны и т.д.),
// по нему строится лента "по общим инструментам"
type Instrument struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:60;uniqueIndex:instruments_name_key" json:"name"`
}

func (Instrument) TableName() string {
	return "instruments"
}

type UserInstrument struct {
	ID           int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64 `gorm:"index" json:"user_id"`
	InstrumentID int64 `gorm:"index" json:"instrument_id"`
}

func (UserInstrument) TableName() string {
	return "user_instruments"
}

type UserToken struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64  `gorm:"index:user_token_idx,unique" json:"user_id"`
	Token  string `gorm:"size:255;index:user_token_idx,unique" json:"token"`
}

func (UserToken) TableName() string {
	return "user_tokens"
}

type Migration struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:60;uniqueIndex" json:"name"`
	AppliedAt time.Time `gorm:"autoCreateTime" json:"applied_at"`
}

func (Migration) TableName() string {
	return "migrations"
}
