package model

import (
	"time"
)

// Like 取消点赞时硬删除，没有历史价值，不做软删
type Like struct {
	UserID    uint64    `gorm:"primaryKey" json:"user_id"`
	PostID    uint64    `gorm:"primaryKey;index:idx_likes_post_id" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
