package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeToggle(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	svc := NewLikeService(r.like, r.post, r.stats, r.user)

	user := r.seedUser(t, "alice")
	post := r.seedPost(t, user.ID, "t1")

	result, err := svc.Toggle(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.IsLiked)
	assert.Equal(t, int64(1), result.LikeCount)

	// 再切回去
	result, err = svc.Toggle(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, result.IsLiked)
	assert.Equal(t, int64(0), result.LikeCount)

	// 两个用户互不影响
	bob := r.seedUser(t, "bob")
	_, err = svc.Toggle(ctx, user.ID, post.ID)
	require.NoError(t, err)
	result, err = svc.Toggle(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.IsLiked)
	assert.Equal(t, int64(2), result.LikeCount)
}

func TestLikeToggleMissingTargets(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	svc := NewLikeService(r.like, r.post, r.stats, r.user)

	user := r.seedUser(t, "alice")
	post := r.seedPost(t, user.ID, "t1")

	_, err := svc.Toggle(ctx, user.ID, 9999)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.Toggle(ctx, 9999, post.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// 软删的帖子不能点赞
	_, err = r.post.SoftDelete(ctx, post.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, user.ID, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestLikeToggleStatsRowMissing(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	svc := NewLikeService(r.like, r.post, r.stats, r.user)

	user := r.seedUser(t, "alice")
	post := r.seedPost(t, user.ID, "t1")

	// 点赞时统计行不在视为异常
	_, err := r.stats.DeleteByPostID(ctx, post.ID)
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, user.ID, post.ID)
	assert.ErrorIs(t, err, ErrStatsMissing)
}
