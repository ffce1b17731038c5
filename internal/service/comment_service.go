package service

import (
	"community/internal/api/dto"
	"community/internal/model"
	"community/internal/repository"
	"context"
	log "log/slog"
)

const (
	DefaultCommentPageSize = 10
	MaxCommentPageSize     = 30
)

type CommentService interface {
	CreateComment(ctx context.Context, userID, postID uint64, req *dto.CommentCreateDTO) (*dto.CommentCreateResultDTO, error)
	GetCommentList(ctx context.Context, postID uint64, lastSeenID *uint64, limit int, currentUserID uint64) (*dto.CommentListDTO, error)
	UpdateComment(ctx context.Context, userID, postID, commentID uint64, req *dto.CommentUpdateDTO) (*dto.CommentUpdateResultDTO, error)
	DeleteComment(ctx context.Context, userID, postID, commentID uint64) (*dto.CommentDeleteResultDTO, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
	statsRepo   repository.PostStatsRepo
	userRepo    repository.UserRepo
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	statsRepo repository.PostStatsRepo,
	userRepo repository.UserRepo,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		statsRepo:   statsRepo,
		userRepo:    userRepo,
	}
}

// CreateComment 插入评论行后原子加一评论数，并把最新计数一并返回，
// 调用方不会看到"评论成功但计数未变"的中间态
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID, postID uint64, req *dto.CommentCreateDTO) (*dto.CommentCreateResultDTO, error) {
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

	comment := &model.PostComment{
		PostID:  postID,
		UserID:  userID,
		Content: req.Content,
	}
	if err = s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	affected, err := s.statsRepo.IncrementComment(ctx, postID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		log.ErrorContext(ctx, "评论数增加失败，统计行缺失", "post_id", postID)
		return nil, ErrStatsMissing
	}

	count := s.currentCommentCount(ctx, postID)
	log.InfoContext(ctx, "评论发布", "comment_id", comment.ID, "post_id", postID, "comment_count", count)

	return &dto.CommentCreateResultDTO{
		Comment: &dto.CommentInfoDTO{
			CommentID: comment.ID,
			Content:   comment.Content,
			Author:    dto.AuthorDTO{Nickname: user.Nickname, ImageURL: user.ImageURL},
			CreatedAt: comment.CreatedAt.Format(timeLayout),
			IsAuthor:  true,
		},
		CommentCount: count,
	}, nil
}

func (s *commentServiceImpl) GetCommentList(ctx context.Context, postID uint64, lastSeenID *uint64, limit int, currentUserID uint64) (*dto.CommentListDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	pageSize := clampLimit(limit, DefaultCommentPageSize, MaxCommentPageSize)

	rows, err := s.commentRepo.FindCommentsWithCursor(ctx, postID, lastSeenID, pageSize, currentUserID)
	if err != nil {
		return nil, err
	}

	hasNext := len(rows) > pageSize
	if hasNext {
		rows = rows[:pageSize]
	}

	comments := make([]*dto.CommentInfoDTO, 0, len(rows))
	for _, row := range rows {
		item := &dto.CommentInfoDTO{
			CommentID: row.CommentID,
			Content:   row.Content,
			Author:    dto.AuthorDTO{Nickname: row.AuthorNickname, ImageURL: row.AuthorImageURL},
			CreatedAt: row.CreatedAt.Format(timeLayout),
			IsAuthor:  row.IsAuthor,
		}
		if row.AuthorDeleted {
			item.Author = dto.AuthorDTO{Nickname: DeletedUserNickname}
		}
		comments = append(comments, item)
	}

	var nextCursor *uint64
	if len(comments) > 0 {
		nextCursor = &comments[len(comments)-1].CommentID
	}

	return &dto.CommentListDTO{
		Comments: comments,
		Pagination: dto.PaginationDTO{
			LastSeenID: nextCursor,
			HasNext:    hasNext,
			Limit:      pageSize,
		},
	}, nil
}

// UpdateComment 已软删的评论视同不存在；评论与路径里的帖子不符按篡改处理
func (s *commentServiceImpl) UpdateComment(ctx context.Context, userID, postID, commentID uint64, req *dto.CommentUpdateDTO) (*dto.CommentUpdateResultDTO, error) {
	comment, err := s.loadOwnComment(ctx, userID, postID, commentID)
	if err != nil {
		return nil, err
	}

	if err = s.commentRepo.UpdateContent(ctx, comment.ID, req.Content); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "评论修改", "comment_id", commentID)
	return &dto.CommentUpdateResultDTO{CommentID: commentID}, nil
}

func (s *commentServiceImpl) DeleteComment(ctx context.Context, userID, postID, commentID uint64) (*dto.CommentDeleteResultDTO, error) {
	comment, err := s.loadOwnComment(ctx, userID, postID, commentID)
	if err != nil {
		return nil, err
	}

	rows, err := s.commentRepo.SoftDelete(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	if rows > 0 {
		affected, err := s.statsRepo.DecrementComment(ctx, postID)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			log.WarnContext(ctx, "评论数未减少，统计行缺失或已为 0", "post_id", postID)
		}
	}

	count := s.currentCommentCount(ctx, postID)
	log.InfoContext(ctx, "评论删除", "comment_id", commentID, "post_id", postID, "comment_count", count)

	return &dto.CommentDeleteResultDTO{CommentCount: count}, nil
}

func (s *commentServiceImpl) loadOwnComment(ctx context.Context, userID, postID, commentID uint64) (*model.PostComment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.PostID != postID {
		log.WarnContext(ctx, "评论与帖子不匹配", "comment_id", commentID, "path_post_id", postID, "actual_post_id", comment.PostID)
		return nil, ErrCommentPostMismatch
	}
	if comment.UserID != userID {
		return nil, ErrNotAuthor
	}
	return comment, nil
}

func (s *commentServiceImpl) currentCommentCount(ctx context.Context, postID uint64) int64 {
	stats, err := s.statsRepo.Get(ctx, postID)
	if err != nil || stats == nil {
		return 0
	}
	return stats.CommentCount
}
