package repository

import (
	"community/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostStatsRepo interface {
	Create(ctx context.Context, stats *model.PostStats) error
	Get(ctx context.Context, postID uint64) (*model.PostStats, error)
	IncrementLike(ctx context.Context, postID uint64) (int64, error)
	DecrementLike(ctx context.Context, postID uint64) (int64, error)
	IncrementComment(ctx context.Context, postID uint64) (int64, error)
	DecrementComment(ctx context.Context, postID uint64) (int64, error)
	IncrementView(ctx context.Context, postID uint64, amount int64) (int64, error)
	SetRowCounts(ctx context.Context, postID uint64, likeCount, commentCount int64) (int64, error)
	AllPostIDs(ctx context.Context) ([]uint64, error)
	DeleteByPostID(ctx context.Context, postID uint64) (int64, error)
}

type postStatsRepoImpl struct {
	db *gorm.DB
}

func NewPostStatsRepository(db *gorm.DB) PostStatsRepo {
	return &postStatsRepoImpl{db: db}
}

func (r *postStatsRepoImpl) Create(ctx context.Context, stats *model.PostStats) error {
	return r.db.WithContext(ctx).Create(stats).Error
}

func (r *postStatsRepoImpl) Get(ctx context.Context, postID uint64) (*model.PostStats, error) {
	var stats model.PostStats
	err := r.db.WithContext(ctx).First(&stats, "post_id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

// IncrementLike 让存储引擎原子执行 +1，避免并发点赞丢更新。
// 返回受影响行数，0 表示统计行不存在
func (r *postStatsRepoImpl) IncrementLike(ctx context.Context, postID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.PostStats{}).
		Where("post_id = ?", postID).
		UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	return result.RowsAffected, result.Error
}

// DecrementLike 带 like_count > 0 条件，和级联删除竞争时在 0 处截断，不会出现负数
func (r *postStatsRepoImpl) DecrementLike(ctx context.Context, postID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.PostStats{}).
		Where("post_id = ? AND like_count > 0", postID).
		UpdateColumn("like_count", gorm.Expr("like_count - 1"))
	return result.RowsAffected, result.Error
}

func (r *postStatsRepoImpl) IncrementComment(ctx context.Context, postID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.PostStats{}).
		Where("post_id = ?", postID).
		UpdateColumn("comment_count", gorm.Expr("comment_count + 1"))
	return result.RowsAffected, result.Error
}

func (r *postStatsRepoImpl) DecrementComment(ctx context.Context, postID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.PostStats{}).
		Where("post_id = ? AND comment_count > 0", postID).
		UpdateColumn("comment_count", gorm.Expr("comment_count - 1"))
	return result.RowsAffected, result.Error
}

// IncrementView 浏览量批量累加，amount 来自视图缓存一次刷盘的增量
func (r *postStatsRepoImpl) IncrementView(ctx context.Context, postID uint64, amount int64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.PostStats{}).
		Where("post_id = ?", postID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", amount))
	return result.RowsAffected, result.Error
}

// SetRowCounts 对账任务用，按真实行数覆写点赞/评论计数
func (r *postStatsRepoImpl) SetRowCounts(ctx context.Context, postID uint64, likeCount, commentCount int64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.PostStats{}).
		Where("post_id = ?", postID).
		UpdateColumns(map[string]interface{}{
			"like_count":    likeCount,
			"comment_count": commentCount,
		})
	return result.RowsAffected, result.Error
}

func (r *postStatsRepoImpl) AllPostIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&model.PostStats{}).
		Pluck("post_id", &ids).Error
	return ids, err
}

func (r *postStatsRepoImpl) DeleteByPostID(ctx context.Context, postID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.PostStats{}, "post_id = ?", postID)
	return result.RowsAffected, result.Error
}
