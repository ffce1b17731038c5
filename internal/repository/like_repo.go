package repository

import (
	"community/internal/model"
	"context"

	"gorm.io/gorm"
)

type LikeRepo interface {
	Create(ctx context.Context, like *model.Like) error
	Exists(ctx context.Context, userID, postID uint64) (bool, error)
	Delete(ctx context.Context, userID, postID uint64) (int64, error)
	DeleteByPostID(ctx context.Context, postID uint64) (int64, error)
	CountByPostID(ctx context.Context, postID uint64) (int64, error)
}

type likeRepoImpl struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepo {
	return &likeRepoImpl{db: db}
}

func (r *likeRepoImpl) Create(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepoImpl) Exists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepoImpl) Delete(ctx context.Context, userID, postID uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

func (r *likeRepoImpl) DeleteByPostID(ctx context.Context, postID uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

func (r *likeRepoImpl) CountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
