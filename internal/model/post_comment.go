package model

import (
	"time"

	"gorm.io/gorm"
)

type PostComment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"not null;index:idx_post_comments_post_id" json:"post_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"type:varchar(1000);not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PostComment) TableName() string {
	return "post_comments"
}
