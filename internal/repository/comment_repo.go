package repository

import (
	"community/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CommentListRow 评论列表投影，作者信息 JOIN 一次带回
type CommentListRow struct {
	CommentID      uint64
	Content        string
	AuthorNickname string
	AuthorImageURL *string
	AuthorDeleted  bool
	CreatedAt      time.Time
	IsAuthor       bool
}

type CommentRepo interface {
	Create(ctx context.Context, comment *model.PostComment) error
	GetByID(ctx context.Context, id uint64) (*model.PostComment, error)
	UpdateContent(ctx context.Context, id uint64, content string) error
	SoftDelete(ctx context.Context, id uint64) (int64, error)
	SoftDeleteByPostID(ctx context.Context, postID uint64) (int64, error)
	CountLiveByPostID(ctx context.Context, postID uint64) (int64, error)
	FindCommentsWithCursor(ctx context.Context, postID uint64, lastSeenID *uint64, limit int, currentUserID uint64) ([]*CommentListRow, error)
}

type commentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepo {
	return &commentRepoImpl{db: db}
}

func (r *commentRepoImpl) Create(ctx context.Context, comment *model.PostComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID 已软删的评论查不到，对调用方与不存在等价
func (r *commentRepoImpl) GetByID(ctx context.Context, id uint64) (*model.PostComment, error) {
	var comment model.PostComment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepoImpl) UpdateContent(ctx context.Context, id uint64, content string) error {
	return r.db.WithContext(ctx).Model(&model.PostComment{}).
		Where("id = ?", id).
		Update("content", content).Error
}

func (r *commentRepoImpl) SoftDelete(ctx context.Context, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.PostComment{}, id)
	return result.RowsAffected, result.Error
}

// SoftDeleteByPostID 帖子级联删除时批量软删存活评论，返回影响行数
func (r *commentRepoImpl) SoftDeleteByPostID(ctx context.Context, postID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&model.PostComment{})
	return result.RowsAffected, result.Error
}

func (r *commentRepoImpl) CountLiveByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PostComment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// FindCommentsWithCursor 与帖子列表同一套键集分页，按评论 ID 倒序
func (r *commentRepoImpl) FindCommentsWithCursor(ctx context.Context, postID uint64, lastSeenID *uint64, limit int, currentUserID uint64) ([]*CommentListRow, error) {
	rows := make([]*CommentListRow, 0, limit+1)

	query := r.db.WithContext(ctx).Table("post_comments").
		Select(`post_comments.id AS comment_id,
			post_comments.content,
			users.nickname AS author_nickname,
			users.image_url AS author_image_url,
			users.deleted_at IS NOT NULL AS author_deleted,
			post_comments.created_at,
			post_comments.user_id = ? AS is_author`, currentUserID).
		Joins("JOIN users ON users.id = post_comments.user_id").
		Where("post_comments.post_id = ? AND post_comments.deleted_at IS NULL", postID)

	if lastSeenID != nil {
		query = query.Where("post_comments.id < ?", *lastSeenID)
	}

	err := query.Order("post_comments.id DESC").
		Limit(limit + 1).
		Scan(&rows).Error
	return rows, err
}
