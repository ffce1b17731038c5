package model

import (
	"time"

	"gorm.io/gorm"
)

type PostImage struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"not null;index:idx_post_images_post_id" json:"post_id"`
	ImageURL  string    `gorm:"type:varchar(512);not null" json:"image_url"`
	SortOrder int8      `gorm:"not null;default:0" json:"sort_order"`
	IsMain    bool      `gorm:"not null;default:0" json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PostImage) TableName() string {
	return "post_images"
}
