package service

import (
	"community/internal/model"
	"community/internal/repository"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// repos 一组接在同一个内存库上的仓储，服务测试直接走真实 SQL
type repos struct {
	db      *gorm.DB
	user    repository.UserRepo
	post    repository.PostRepo
	stats   repository.PostStatsRepo
	image   repository.PostImageRepo
	comment repository.CommentRepo
	like    repository.LikeRepo
}

func newTestRepos(t *testing.T) *repos {
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
		&model.PostImage{},
	))

	return &repos{
		db:      db,
		user:    repository.NewUserRepository(db),
		post:    repository.NewPostRepository(db),
		stats:   repository.NewPostStatsRepository(db),
		image:   repository.NewPostImageRepository(db),
		comment: repository.NewCommentRepository(db),
		like:    repository.NewLikeRepository(db),
	}
}

func (r *repos) seedUser(t *testing.T, nickname string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    fmt.Sprintf("%s@example.com", nickname),
		Nickname: nickname,
		Password: "hashed",
	}
	require.NoError(t, r.db.Create(user).Error)
	return user
}

func (r *repos) seedPost(t *testing.T, userID uint64, title string) *model.Post {
	t.Helper()
	post := &model.Post{UserID: userID, Title: title, Content: "内容 " + title}
	require.NoError(t, r.db.Create(post).Error)
	require.NoError(t, r.db.Create(&model.PostStats{PostID: post.ID}).Error)
	return post
}

// stubImageService 测试里不碰对象存储
type stubImageService struct{}

func (stubImageService) UploadTemp(_ context.Context, _ string, _ io.Reader, _ int64, _ string) (string, error) {
	return TempImagePrefix + "stub.jpg", nil
}

func (stubImageService) PromoteToPermanent(_ context.Context, ref string) (string, error) {
	return "http://minio/community-images/" + strings.TrimPrefix(ref, TempImagePrefix), nil
}

func (stubImageService) DeleteBlob(_ context.Context, _ string) {}
