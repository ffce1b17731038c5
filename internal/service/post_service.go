package service

import (
	"community/internal/api/dto"
	"community/internal/model"
	"community/internal/repository"
	"context"
	log "log/slog"
)

const (
	DefaultPostPageSize = 20
	MaxPostPageSize     = 50
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostCreateResultDTO, error)
	GetPostList(ctx context.Context, lastSeenID *uint64, limit int) (*dto.PostListDTO, error)
	GetPostDetail(ctx context.Context, userID, postID uint64) (*dto.PostDetailDTO, error)
	UpdatePost(ctx context.Context, userID, postID uint64, req *dto.PostUpdateDTO) (*dto.PostUpdateResultDTO, error)
	DeletePost(ctx context.Context, userID, postID uint64) error
}

type postServiceImpl struct {
	postRepo     repository.PostRepo
	statsRepo    repository.PostStatsRepo
	imageRepo    repository.PostImageRepo
	commentRepo  repository.CommentRepo
	likeRepo     repository.LikeRepo
	userRepo     repository.UserRepo
	viewCache    *ViewCountCache
	imageService ImageService
}

func NewPostService(
	postRepo repository.PostRepo,
	statsRepo repository.PostStatsRepo,
	imageRepo repository.PostImageRepo,
	commentRepo repository.CommentRepo,
	likeRepo repository.LikeRepo,
	userRepo repository.UserRepo,
	viewCache *ViewCountCache,
	imageService ImageService,
) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		statsRepo:    statsRepo,
		imageRepo:    imageRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		userRepo:     userRepo,
		viewCache:    viewCache,
		imageService: imageService,
	}
}

// CreatePost 发帖：帖子与统计行同事务创建，图片先从临时桶转正再随事务落库
func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostCreateResultDTO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "查询用户失败", "err", err)
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var image *model.PostImage
	if req.ImageURL != nil && *req.ImageURL != "" {
		publicURL, err := s.imageService.PromoteToPermanent(ctx, *req.ImageURL)
		if err != nil {
			return nil, err
		}
		image = &model.PostImage{
			ImageURL:  publicURL,
			SortOrder: 0,
			IsMain:    true,
		}
	}

	post := &model.Post{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.postRepo.CreateWithStats(ctx, post, image); err != nil {
		log.ErrorContext(ctx, "创建帖子失败", "err", err)
		if image != nil {
			// 事务失败后转正的图片已成孤儿，尽力清理
			go s.imageService.DeleteBlob(context.Background(), image.ImageURL)
		}
		return nil, UnExpectedError
	}

	return &dto.PostCreateResultDTO{PostID: post.ID}, nil
}

// GetPostList 帖子列表，基于 id 的游标分页；
// 浏览数在库值基础上叠加尚未落库的缓存增量
func (s *postServiceImpl) GetPostList(ctx context.Context, lastSeenID *uint64, limit int) (*dto.PostListDTO, error) {
	limit = clampLimit(limit, DefaultPostPageSize, MaxPostPageSize)

	rows, err := s.postRepo.FindPostsWithCursor(ctx, lastSeenID, limit)
	if err != nil {
		log.ErrorContext(ctx, "查询帖子列表失败", "err", err)
		return nil, UnExpectedError
	}

	hasNext := len(rows) > limit
	if hasNext {
		rows = rows[:limit]
	}

	posts := make([]*dto.PostSummaryDTO, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, &dto.PostSummaryDTO{
			PostID:    row.PostID,
			Title:     row.Title,
			Author:    s.buildAuthor(row.AuthorNickname, row.AuthorImageURL, row.AuthorDeleted),
			CreatedAt: row.CreatedAt.Format(timeLayout),
			Stats: dto.PostStatsDTO{
				LikeCount:    row.LikeCount,
				CommentCount: row.CommentCount,
				ViewCount:    row.ViewCount + s.viewCache.Peek(row.PostID),
			},
		})
	}

	var nextCursor *uint64
	if hasNext {
		nextCursor = &rows[len(rows)-1].PostID
	}

	return &dto.PostListDTO{
		Posts: posts,
		Pagination: dto.PaginationDTO{
			LastSeenID: nextCursor,
			HasNext:    hasNext,
			Limit:      limit,
		},
	}, nil
}

// GetPostDetail 帖子详情。每次调用记一次浏览，返回值中的浏览数
// 为库值加上本进程缓存的增量，刷新前后读者看到的数值单调不减
func (s *postServiceImpl) GetPostDetail(ctx context.Context, userID, postID uint64) (*dto.PostDetailDTO, error) {
	row, err := s.postRepo.FindPostDetail(ctx, postID, userID)
	if err != nil {
		log.ErrorContext(ctx, "查询帖子详情失败", "postID", postID, "err", err)
		return nil, UnExpectedError
	}
	if row == nil {
		return nil, ErrPostNotFound
	}

	delta := s.viewCache.Record(postID)

	return &dto.PostDetailDTO{
		PostID:    row.PostID,
		Title:     row.Title,
		Content:   row.Content,
		ImageURL:  row.ImageURL,
		CreatedAt: row.CreatedAt.Format(timeLayout),
		UpdatedAt: row.UpdatedAt.Format(timeLayout),
		Author:    s.buildAuthor(row.AuthorNickname, row.AuthorImageURL, row.AuthorDeleted),
		Stats: dto.PostStatsDTO{
			LikeCount:    row.LikeCount,
			CommentCount: row.CommentCount,
			ViewCount:    row.ViewCount + delta,
		},
		IsLiked:  row.IsLiked,
		IsAuthor: row.IsAuthor,
	}, nil
}

// UpdatePost 仅作者可编辑。image_url 三态：缺省保留原图，空串摘除，
// temp/ 引用替换为新图
func (s *postServiceImpl) UpdatePost(ctx context.Context, userID, postID uint64, req *dto.PostUpdateDTO) (*dto.PostUpdateResultDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		log.ErrorContext(ctx, "查询帖子失败", "postID", postID, "err", err)
		return nil, UnExpectedError
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID {
		return nil, ErrNotAuthor
	}

	contentChanged := false
	if req.Title != nil && *req.Title != post.Title {
		post.Title = *req.Title
		contentChanged = true
	}
	if req.Content != nil && *req.Content != post.Content {
		post.Content = *req.Content
		contentChanged = true
	}

	imageChanged := false
	if req.ImageURL != nil {
		if *req.ImageURL == "" {
			if err := s.removeImages(ctx, postID); err != nil {
				return nil, err
			}
			imageChanged = true
		} else {
			publicURL, err := s.imageService.PromoteToPermanent(ctx, *req.ImageURL)
			if err != nil {
				return nil, err
			}
			if err := s.removeImages(ctx, postID); err != nil {
				return nil, err
			}
			newImage := &model.PostImage{
				PostID:    postID,
				ImageURL:  publicURL,
				SortOrder: 0,
				IsMain:    true,
			}
			if err := s.imageRepo.Create(ctx, newImage); err != nil {
				log.ErrorContext(ctx, "保存帖子图片失败", "postID", postID, "err", err)
				return nil, UnExpectedError
			}
			imageChanged = true
		}
	}

	if !contentChanged && !imageChanged {
		return nil, ErrNothingToUpdate
	}

	if contentChanged {
		if err := s.postRepo.UpdatePost(ctx, post); err != nil {
			log.ErrorContext(ctx, "更新帖子失败", "postID", postID, "err", err)
			return nil, UnExpectedError
		}
	}

	return &dto.PostUpdateResultDTO{PostID: postID}, nil
}

// removeImages 软删帖子现有图片并尽力清理对象存储
func (s *postServiceImpl) removeImages(ctx context.Context, postID uint64) error {
	images, err := s.imageRepo.FindLiveByPostID(ctx, postID)
	if err != nil {
		log.ErrorContext(ctx, "查询帖子图片失败", "postID", postID, "err", err)
		return UnExpectedError
	}
	if len(images) == 0 {
		return nil
	}

	if _, err := s.imageRepo.SoftDeleteByPostID(ctx, postID); err != nil {
		log.ErrorContext(ctx, "删除帖子图片失败", "postID", postID, "err", err)
		return UnExpectedError
	}

	go func(urls []string) {
		bgCtx := context.Background()
		for _, u := range urls {
			s.imageService.DeleteBlob(bgCtx, u)
		}
	}(imageURLs(images))

	return nil
}

// DeletePost 仅作者可删。级联顺序：帖子、图片、评论走软删，
// 点赞行与统计行硬删；帖子软删成功后的失败只记日志，
// 幂等删除允许重试补齐剩余步骤
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		log.ErrorContext(ctx, "查询帖子失败", "postID", postID, "err", err)
		return UnExpectedError
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrNotAuthor
	}

	// 软删前先取存活图片，之后就查不到了
	images, err := s.imageRepo.FindLiveByPostID(ctx, postID)
	if err != nil {
		log.ErrorContext(ctx, "查询帖子图片失败", "postID", postID, "err", err)
		return UnExpectedError
	}

	postRows, err := s.postRepo.SoftDelete(ctx, postID)
	if err != nil {
		log.ErrorContext(ctx, "删除帖子失败", "postID", postID, "err", err)
		return UnExpectedError
	}
	if postRows == 0 {
		// 并发删除抢先完成
		return ErrPostNotFound
	}

	imageRows, err := s.imageRepo.SoftDeleteByPostID(ctx, postID)
	if err != nil {
		log.ErrorContext(ctx, "级联删除图片失败", "postID", postID, "err", err)
	}
	commentRows, err := s.commentRepo.SoftDeleteByPostID(ctx, postID)
	if err != nil {
		log.ErrorContext(ctx, "级联删除评论失败", "postID", postID, "err", err)
	}
	likeRows, err := s.likeRepo.DeleteByPostID(ctx, postID)
	if err != nil {
		log.ErrorContext(ctx, "级联删除点赞失败", "postID", postID, "err", err)
	}
	statsRows, err := s.statsRepo.DeleteByPostID(ctx, postID)
	if err != nil {
		log.ErrorContext(ctx, "级联删除统计失败", "postID", postID, "err", err)
	}

	log.InfoContext(ctx, "帖子删除完成",
		"postID", postID,
		"images", imageRows,
		"comments", commentRows,
		"likes", likeRows,
		"stats", statsRows,
	)

	if len(images) > 0 {
		go func(urls []string) {
			bgCtx := context.Background()
			for _, u := range urls {
				s.imageService.DeleteBlob(bgCtx, u)
			}
		}(imageURLs(images))
	}

	return nil
}

func (s *postServiceImpl) buildAuthor(nickname string, imageURL *string, deleted bool) dto.AuthorDTO {
	if deleted {
		return dto.AuthorDTO{Nickname: DeletedUserNickname}
	}
	return dto.AuthorDTO{Nickname: nickname, ImageURL: imageURL}
}

func imageURLs(images []*model.PostImage) []string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.ImageURL)
	}
	return urls
}
