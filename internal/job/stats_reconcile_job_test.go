package job

import (
	"community/internal/model"
	"community/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newJobTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.PostStats{},
		&model.PostComment{},
		&model.Like{},
	))
	return db
}

func TestStatsReconcileRepairsDrift(t *testing.T) {
	db := newJobTestDB(t)
	ctx := context.Background()

	statsRepo := repository.NewPostStatsRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	user := &model.User{Email: "a@example.com", Nickname: "alice", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	post := &model.Post{UserID: user.ID, Title: "t", Content: "c"}
	require.NoError(t, db.Create(post).Error)

	// 计数故意写歪：真实为 2 赞 1 评
	require.NoError(t, db.Create(&model.PostStats{PostID: post.ID, LikeCount: 7, CommentCount: 0}).Error)
	require.NoError(t, db.Create(&model.Like{UserID: user.ID, PostID: post.ID}).Error)
	other := &model.User{Email: "b@example.com", Nickname: "bob", Password: "x"}
	require.NoError(t, db.Create(other).Error)
	require.NoError(t, db.Create(&model.Like{UserID: other.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&model.PostComment{PostID: post.ID, UserID: user.ID, Content: "x"}).Error)

	// 软删的评论不计入
	deleted := &model.PostComment{PostID: post.ID, UserID: user.ID, Content: "y"}
	require.NoError(t, db.Create(deleted).Error)
	require.NoError(t, db.Delete(deleted).Error)

	job := NewStatsReconcileJob(statsRepo, likeRepo, commentRepo)
	job.Run()

	stats, err := statsRepo.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.LikeCount)
	assert.Equal(t, int64(1), stats.CommentCount)
}

func TestStatsReconcileLeavesAccurateRows(t *testing.T) {
	db := newJobTestDB(t)
	ctx := context.Background()

	statsRepo := repository.NewPostStatsRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	user := &model.User{Email: "a@example.com", Nickname: "alice", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	post := &model.Post{UserID: user.ID, Title: "t", Content: "c"}
	require.NoError(t, db.Create(post).Error)
	require.NoError(t, db.Create(&model.PostStats{PostID: post.ID, ViewCount: 42}).Error)

	job := NewStatsReconcileJob(statsRepo, likeRepo, commentRepo)
	job.Run()

	// 无漂移不写库，浏览数也不受对账影响
	stats, err := statsRepo.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.LikeCount)
	assert.Equal(t, int64(42), stats.ViewCount)
}
