package repository

import (
	"community/internal/model"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 内存库绑定在单个连接上
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
	return db
}

func seedUser(t *testing.T, db *gorm.DB, nickname string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    fmt.Sprintf("%s@example.com", nickname),
		Nickname: nickname,
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, userID uint64, title string) *model.Post {
	t.Helper()
	post := &model.Post{
		UserID:  userID,
		Title:   title,
		Content: "内容 " + title,
	}
	require.NoError(t, db.Create(post).Error)
	require.NoError(t, db.Create(&model.PostStats{PostID: post.ID}).Error)
	return post
}
