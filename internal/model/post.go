package model

import (
	"time"

	"gorm.io/gorm"
)

// Post 软删除依赖 gorm.DeletedAt：所有常规查询自动过滤已删除行，
// 运营排查需要时用 Unscoped 按 ID 取回
type Post struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 关联关系
	User   User        `gorm:"foreignKey:UserID;references:ID"`
	Images []PostImage `gorm:"foreignKey:PostID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
