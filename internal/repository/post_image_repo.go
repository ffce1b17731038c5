package repository

import (
	"community/internal/model"
	"context"

	"gorm.io/gorm"
)

type PostImageRepo interface {
	Create(ctx context.Context, image *model.PostImage) error
	FindLiveByPostID(ctx context.Context, postID uint64) ([]*model.PostImage, error)
	SoftDeleteByPostID(ctx context.Context, postID uint64) (int64, error)
}

type postImageRepoImpl struct {
	db *gorm.DB
}

func NewPostImageRepository(db *gorm.DB) PostImageRepo {
	return &postImageRepoImpl{db: db}
}

func (r *postImageRepoImpl) Create(ctx context.Context, image *model.PostImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *postImageRepoImpl) FindLiveByPostID(ctx context.Context, postID uint64) ([]*model.PostImage, error) {
	images := make([]*model.PostImage, 0)
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&images).Error
	return images, err
}

func (r *postImageRepoImpl) SoftDeleteByPostID(ctx context.Context, postID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&model.PostImage{})
	return result.RowsAffected, result.Error
}
