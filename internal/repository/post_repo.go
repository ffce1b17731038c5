package repository

import (
	"community/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PostListRow 列表页单行投影：帖子 + 作者 + 统计一次查回，避免 N+1
type PostListRow struct {
	PostID         uint64
	Title          string
	AuthorNickname string
	AuthorImageURL *string
	AuthorDeleted  bool
	CreatedAt      time.Time
	LikeCount      int64
	CommentCount   int64
	ViewCount      int64
}

// PostDetailRow 详情页单行投影，额外带上主图、是否已赞、是否作者
type PostDetailRow struct {
	PostID         uint64
	Title          string
	Content        string
	ImageURL       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	AuthorNickname string
	AuthorImageURL *string
	AuthorDeleted  bool
	LikeCount      int64
	CommentCount   int64
	ViewCount      int64
	IsLiked        bool
	IsAuthor       bool
}

type PostRepo interface {
	CreateWithStats(ctx context.Context, post *model.Post, image *model.PostImage) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	SoftDelete(ctx context.Context, id uint64) (int64, error)
	FindPostsWithCursor(ctx context.Context, lastSeenID *uint64, limit int) ([]*PostListRow, error)
	FindPostDetail(ctx context.Context, postID, currentUserID uint64) (*PostDetailRow, error)
}

type postRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &postRepoImpl{db: db}
}

// CreateWithStats 帖子与统计行同事务落库，保证每个存活帖子都有统计行
func (r *postRepoImpl) CreateWithStats(ctx context.Context, post *model.Post, image *model.PostImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.PostStats{PostID: post.ID}).Error; err != nil {
			return err
		}
		if image != nil {
			image.PostID = post.ID
			if err := tx.Create(image).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepoImpl) SoftDelete(ctx context.Context, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Post{}, id)
	return result.RowsAffected, result.Error
}

// FindPostsWithCursor 键集分页：按 ID 倒序，游标之后只取 id < lastSeenID 的行，
// 新帖只会出现在游标"上方"，翻页不受并发写入影响。多取一行用于判断 hasNext
func (r *postRepoImpl) FindPostsWithCursor(ctx context.Context, lastSeenID *uint64, limit int) ([]*PostListRow, error) {
	rows := make([]*PostListRow, 0, limit+1)

	query := r.db.WithContext(ctx).Table("posts").
		Select(`posts.id AS post_id,
			posts.title,
			users.nickname AS author_nickname,
			users.image_url AS author_image_url,
			users.deleted_at IS NOT NULL AS author_deleted,
			posts.created_at,
			post_stats.like_count,
			post_stats.comment_count,
			post_stats.view_count`).
		Joins("JOIN users ON users.id = posts.user_id").
		Joins("JOIN post_stats ON post_stats.post_id = posts.id").
		Where("posts.deleted_at IS NULL")

	if lastSeenID != nil {
		query = query.Where("posts.id < ?", *lastSeenID)
	}

	err := query.Order("posts.id DESC").
		Limit(limit + 1).
		Scan(&rows).Error
	return rows, err
}

// FindPostDetail 单条查询取回详情所需全部数据；帖子不存在或已软删返回 nil
func (r *postRepoImpl) FindPostDetail(ctx context.Context, postID, currentUserID uint64) (*PostDetailRow, error) {
	var row PostDetailRow
	result := r.db.WithContext(ctx).Table("posts").
		Select(`posts.id AS post_id,
			posts.title,
			posts.content,
			(SELECT pi.image_url FROM post_images pi
				WHERE pi.post_id = posts.id AND pi.is_main = ? AND pi.deleted_at IS NULL
				LIMIT 1) AS image_url,
			posts.created_at,
			posts.updated_at,
			users.nickname AS author_nickname,
			users.image_url AS author_image_url,
			users.deleted_at IS NOT NULL AS author_deleted,
			post_stats.like_count,
			post_stats.comment_count,
			post_stats.view_count,
			EXISTS(SELECT 1 FROM likes l
				WHERE l.post_id = posts.id AND l.user_id = ?) AS is_liked,
			posts.user_id = ? AS is_author`,
			true, currentUserID, currentUserID).
		Joins("JOIN users ON users.id = posts.user_id").
		Joins("JOIN post_stats ON post_stats.post_id = posts.id").
		Where("posts.id = ? AND posts.deleted_at IS NULL", postID).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}
