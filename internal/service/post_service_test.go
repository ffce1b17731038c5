package service

import (
	"community/internal/api/dto"
	"community/internal/model"
	"community/internal/pkg/util"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostService(r *repos, cache *ViewCountCache) PostService {
	return NewPostService(r.post, r.stats, r.image, r.comment, r.like, r.user, cache, stubImageService{})
}

func TestPostCreate(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	svc := newPostService(r, NewViewCountCache(r.stats))

	user := r.seedUser(t, "alice")

	result, err := svc.CreatePost(ctx, user.ID, &dto.PostCreateDTO{
		Title:    "第一帖",
		Content:  "正文",
		ImageURL: util.PtrString(TempImagePrefix + "2026/08/29/a.jpg"),
	})
	require.NoError(t, err)
	require.NotZero(t, result.PostID)

	// 统计行随帖子一起建好
	stats, err := r.stats.Get(ctx, result.PostID)
	require.NoError(t, err)
	require.NotNil(t, stats)

	images, err := r.image.FindLiveByPostID(ctx, result.PostID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.True(t, images[0].IsMain)

	_, err = svc.CreatePost(ctx, 9999, &dto.PostCreateDTO{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPostListPagination(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	svc := newPostService(r, NewViewCountCache(r.stats))

	user := r.seedUser(t, "alice")
	for i := 0; i < 55; i++ {
		r.seedPost(t, user.ID, fmt.Sprintf("post-%02d", i))
	}

	// limit 0 回落默认值 20
	page, err := svc.GetPostList(ctx, nil, 0)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 20)
	assert.Equal(t, 20, page.Pagination.Limit)
	assert.True(t, page.Pagination.HasNext)

	// 超过上限 50 截断
	page, err = svc.GetPostList(ctx, nil, 500)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 50)
	assert.Equal(t, 50, page.Pagination.Limit)

	// 翻到底拼接完整
	seen := make(map[uint64]bool)
	var cursor *uint64
	for {
		p, err := svc.GetPostList(ctx, cursor, 20)
		require.NoError(t, err)
		for _, item := range p.Posts {
			assert.False(t, seen[item.PostID])
			seen[item.PostID] = true
		}
		if !p.Pagination.HasNext {
			assert.Nil(t, p.Pagination.LastSeenID)
			break
		}
		cursor = p.Pagination.LastSeenID
	}
	assert.Len(t, seen, 55)
}

func TestPostDetailViewCount(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	cache := NewViewCountCache(r.stats)
	svc := newPostService(r, cache)

	user := r.seedUser(t, "alice")
	post := r.seedPost(t, user.ID, "t1")

	// 连续浏览读数单调递增
	for want := int64(1); want <= 3; want++ {
		detail, err := svc.GetPostDetail(ctx, user.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, want, detail.Stats.ViewCount)
	}

	// 刷盘后库值追上，读数不回退
	cache.Flush(ctx)
	stats, err := r.stats.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.ViewCount)

	detail, err := svc.GetPostDetail(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), detail.Stats.ViewCount)
}

func TestPostListIncludesPendingViews(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	cache := NewViewCountCache(r.stats)
	svc := newPostService(r, cache)

	user := r.seedUser(t, "alice")
	post := r.seedPost(t, user.ID, "t1")

	_, err := svc.GetPostDetail(ctx, user.ID, post.ID)
	require.NoError(t, err)

	// 未刷盘的增量也出现在列表里
	page, err := svc.GetPostList(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, int64(1), page.Posts[0].Stats.ViewCount)
}

func TestPostUpdate(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	svc := newPostService(r, NewViewCountCache(r.stats))

	alice := r.seedUser(t, "alice")
	bob := r.seedUser(t, "bob")
	post := r.seedPost(t, alice.ID, "旧标题")

	_, err := svc.UpdatePost(ctx, bob.ID, post.ID, &dto.PostUpdateDTO{Title: util.PtrString("改")})
	assert.ErrorIs(t, err, ErrNotAuthor)

	// 什么都没变
	_, err = svc.UpdatePost(ctx, alice.ID, post.ID, &dto.PostUpdateDTO{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	result, err := svc.UpdatePost(ctx, alice.ID, post.ID, &dto.PostUpdateDTO{Title: util.PtrString("新标题")})
	require.NoError(t, err)
	assert.Equal(t, post.ID, result.PostID)

	got, err := r.post.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "新标题", got.Title)
}

func TestPostUpdateImage(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	svc := newPostService(r, NewViewCountCache(r.stats))

	alice := r.seedUser(t, "alice")
	post := r.seedPost(t, alice.ID, "t1")
	require.NoError(t, r.image.Create(ctx, &model.PostImage{PostID: post.ID, ImageURL: "http://minio/community-images/old.jpg", IsMain: true}))

	// temp/ 引用替换旧图
	_, err := svc.UpdatePost(ctx, alice.ID, post.ID, &dto.PostUpdateDTO{ImageURL: util.PtrString(TempImagePrefix + "new.jpg")})
	require.NoError(t, err)

	images, err := r.image.FindLiveByPostID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "http://minio/community-images/new.jpg", images[0].ImageURL)

	// 空串摘除
	_, err = svc.UpdatePost(ctx, alice.ID, post.ID, &dto.PostUpdateDTO{ImageURL: util.PtrString("")})
	require.NoError(t, err)

	images, err = r.image.FindLiveByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestPostDeleteCascade(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	cache := NewViewCountCache(r.stats)
	postSvc := newPostService(r, cache)
	commentSvc := newCommentService(r)
	likeSvc := NewLikeService(r.like, r.post, r.stats, r.user)

	alice := r.seedUser(t, "alice")
	bob := r.seedUser(t, "bob")
	post := r.seedPost(t, alice.ID, "t1")

	_, err := commentSvc.CreateComment(ctx, bob.ID, post.ID, &dto.CommentCreateDTO{Content: "x"})
	require.NoError(t, err)
	_, err = likeSvc.Toggle(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	// 非作者删不掉
	err = postSvc.DeletePost(ctx, bob.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotAuthor)

	require.NoError(t, postSvc.DeletePost(ctx, alice.ID, post.ID))

	// 详情、评论列表、重复删除都按不存在处理
	_, err = postSvc.GetPostDetail(ctx, bob.ID, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = commentSvc.GetCommentList(ctx, post.ID, nil, 10, bob.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	err = postSvc.DeletePost(ctx, alice.ID, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	// 点赞行和统计行硬删
	var likeCount int64
	require.NoError(t, r.db.Model(&model.Like{}).Where("post_id = ?", post.ID).Count(&likeCount).Error)
	assert.Zero(t, likeCount)

	stats, err := r.stats.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, stats)

	// 迟到的浏览增量刷盘时被丢弃而不是复活统计行
	cache.Record(post.ID)
	cache.Flush(ctx)
	stats, err = r.stats.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, stats)
}
