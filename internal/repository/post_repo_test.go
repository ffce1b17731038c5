package repository

import (
	"community/internal/model"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWithStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewPostRepository(db)

	user := seedUser(t, db, "alice")

	post := &model.Post{UserID: user.ID, Title: "标题", Content: "正文"}
	image := &model.PostImage{ImageURL: "http://minio/img/1.jpg", IsMain: true}
	require.NoError(t, repo.CreateWithStats(ctx, post, image))

	var stats model.PostStats
	require.NoError(t, db.First(&stats, "post_id = ?", post.ID).Error)
	assert.Zero(t, stats.LikeCount)

	var img model.PostImage
	require.NoError(t, db.First(&img, "post_id = ?", post.ID).Error)
	assert.Equal(t, post.ID, img.PostID)
}

func TestFindPostsWithCursor(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewPostRepository(db)

	user := seedUser(t, db, "alice")
	var ids []uint64
	for i := 0; i < 25; i++ {
		p := seedPost(t, db, user.ID, fmt.Sprintf("post-%02d", i))
		ids = append(ids, p.ID)
	}

	// 首页：limit+1 行用于判断是否还有下一页
	rows, err := repo.FindPostsWithCursor(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, ids[24], rows[0].PostID)

	// 依次翻完，拼起来应当无重复无遗漏
	seen := make(map[uint64]bool)
	var cursor *uint64
	for {
		page, err := repo.FindPostsWithCursor(ctx, cursor, 10)
		require.NoError(t, err)
		hasNext := len(page) > 10
		if hasNext {
			page = page[:10]
		}
		var last uint64
		for _, row := range page {
			assert.False(t, seen[row.PostID], "post %d 出现了两次", row.PostID)
			seen[row.PostID] = true
			last = row.PostID
		}
		if !hasNext {
			break
		}
		cursor = &last
	}
	assert.Len(t, seen, 25)
}

func TestFindPostsWithCursorSkipsDeleted(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewPostRepository(db)

	user := seedUser(t, db, "alice")
	kept := seedPost(t, db, user.ID, "kept")
	gone := seedPost(t, db, user.ID, "gone")

	rows, err := repo.SoftDelete(ctx, gone.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	list, err := repo.FindPostsWithCursor(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].PostID)
}

func TestFindPostDetail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewPostRepository(db)

	author := seedUser(t, db, "author")
	viewer := seedUser(t, db, "viewer")
	post := seedPost(t, db, author.ID, "标题")
	require.NoError(t, db.Create(&model.PostImage{PostID: post.ID, ImageURL: "http://minio/img/main.jpg", IsMain: true}).Error)
	require.NoError(t, db.Create(&model.Like{UserID: viewer.ID, PostID: post.ID}).Error)

	row, err := repo.FindPostDetail(ctx, post.ID, viewer.ID)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.IsLiked)
	assert.False(t, row.IsAuthor)
	assert.Equal(t, "author", row.AuthorNickname)
	require.NotNil(t, row.ImageURL)
	assert.Equal(t, "http://minio/img/main.jpg", *row.ImageURL)

	row, err = repo.FindPostDetail(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, row.IsAuthor)
	assert.False(t, row.IsLiked)

	// 游客视角
	row, err = repo.FindPostDetail(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.False(t, row.IsLiked)
	assert.False(t, row.IsAuthor)
}

func TestFindPostDetailDeleted(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewPostRepository(db)

	user := seedUser(t, db, "alice")
	post := seedPost(t, db, user.ID, "标题")

	_, err := repo.SoftDelete(ctx, post.ID)
	require.NoError(t, err)

	row, err := repo.FindPostDetail(ctx, post.ID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, row)
}
