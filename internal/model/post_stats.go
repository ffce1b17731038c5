package model

// PostStats 主键直接使用帖子 ID，不自增；随 Post 同事务创建，随 Post 删除硬删
type PostStats struct {
	PostID       uint64 `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	ViewCount    int64  `gorm:"not null;default:0" json:"view_count"`
	LikeCount    int64  `gorm:"not null;default:0" json:"like_count"`
	CommentCount int64  `gorm:"not null;default:0" json:"comment_count"`
}

func (PostStats) TableName() string {
	return "post_stats"
}
