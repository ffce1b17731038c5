package job

import (
	"community/internal/pkg/logger"
	"community/internal/repository"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// StatsReconcileJob 每日对账：以点赞表和评论表的行数为准，
// 修正统计表中因两步更新漂移的计数
type StatsReconcileJob struct {
	statsRepo   repository.PostStatsRepo
	likeRepo    repository.LikeRepo
	commentRepo repository.CommentRepo
}

func NewStatsReconcileJob(
	statsRepo repository.PostStatsRepo,
	likeRepo repository.LikeRepo,
	commentRepo repository.CommentRepo,
) *StatsReconcileJob {
	return &StatsReconcileJob{
		statsRepo:   statsRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

func (s *StatsReconcileJob) Run() {
	traceID := "job-reconcile-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	postIDs, err := s.statsRepo.AllPostIDs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "获取统计行列表失败", "err", err)
		return
	}

	repaired := 0
	for _, pid := range postIDs {
		likes, err := s.likeRepo.CountByPostID(ctx, pid)
		if err != nil {
			log.ErrorContext(ctx, "统计点赞行数失败", "postID", pid, "err", err)
			continue
		}
		comments, err := s.commentRepo.CountLiveByPostID(ctx, pid)
		if err != nil {
			log.ErrorContext(ctx, "统计评论行数失败", "postID", pid, "err", err)
			continue
		}

		stats, err := s.statsRepo.Get(ctx, pid)
		if err != nil || stats == nil {
			continue
		}
		if stats.LikeCount == likes && stats.CommentCount == comments {
			continue
		}

		log.WarnContext(ctx, "发现计数漂移",
			"postID", pid,
			"likeCount", stats.LikeCount, "likeRows", likes,
			"commentCount", stats.CommentCount, "commentRows", comments,
		)
		if _, err := s.statsRepo.SetRowCounts(ctx, pid, likes, comments); err != nil {
			log.ErrorContext(ctx, "修正计数失败", "postID", pid, "err", err)
			continue
		}
		repaired++
	}

	log.InfoContext(ctx, "计数对账完成", "posts", len(postIDs), "repaired", repaired)
}
