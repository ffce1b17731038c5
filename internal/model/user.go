package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint64  `gorm:"primaryKey"`
	Email     string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_email"`
	Nickname  string  `gorm:"type:varchar(50);not null;uniqueIndex:idx_nickname"`
	Password  string  `gorm:"type:varchar(255);not null"`
	ImageURL  *string `gorm:"type:varchar(512)"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
