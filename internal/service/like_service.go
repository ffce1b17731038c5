package service

import (
	"community/internal/api/dto"
	"community/internal/model"
	"community/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
)

type LikeService interface {
	Toggle(ctx context.Context, userID, postID uint64) (*dto.LikeResultDTO, error)
}

type likeServiceImpl struct {
	likeRepo  repository.LikeRepo
	postRepo  repository.PostRepo
	statsRepo repository.PostStatsRepo
	userRepo  repository.UserRepo
}

func NewLikeService(
	likeRepo repository.LikeRepo,
	postRepo repository.PostRepo,
	statsRepo repository.PostStatsRepo,
	userRepo repository.UserRepo,
) LikeService {
	return &likeServiceImpl{
		likeRepo:  likeRepo,
		postRepo:  postRepo,
		statsRepo: statsRepo,
		userRepo:  userRepo,
	}
}

// Toggle 点赞/取消点赞。先改 likes 行再改计数，两步之间崩溃会让计数
// 落后一步，由每日对账任务校正。(post, user) 上的唯一键保证同一用户
// 的并发切换被串行化
func (s *likeServiceImpl) Toggle(ctx context.Context, userID, postID uint64) (*dto.LikeResultDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	liked, err := s.likeRepo.Exists(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	var isLiked bool
	if liked {
		rows, err := s.likeRepo.Delete(ctx, userID, postID)
		if err != nil {
			return nil, err
		}
		if rows > 0 {
			affected, err := s.statsRepo.DecrementLike(ctx, postID)
			if err != nil {
				return nil, err
			}
			if affected == 0 {
				// 和级联删除竞争或计数已为 0，状态变更本身成功
				log.WarnContext(ctx, "点赞数未减少，统计行缺失或已为 0", "post_id", postID)
			}
		}
		isLiked = false
		log.InfoContext(ctx, "取消点赞", "user_id", userID, "post_id", postID)
	} else {
		err = s.likeRepo.Create(ctx, &model.Like{UserID: userID, PostID: postID, CreatedAt: time.Now()})
		if err != nil {
			if isDuplicateError(err) {
				return nil, ErrActionDuplicate
			}
			return nil, err
		}
		affected, err := s.statsRepo.IncrementLike(ctx, postID)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			log.ErrorContext(ctx, "点赞数增加失败，统计行缺失", "post_id", postID)
			return nil, ErrStatsMissing
		}
		isLiked = true
		log.InfoContext(ctx, "点赞", "user_id", userID, "post_id", postID)
	}

	var likeCount int64
	if stats, err := s.statsRepo.Get(ctx, postID); err == nil && stats != nil {
		likeCount = stats.LikeCount
	}

	return &dto.LikeResultDTO{IsLiked: isLiked, LikeCount: likeCount}, nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
