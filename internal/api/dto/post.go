package dto

type PostCreateDTO struct {
	Title    string  `json:"title" binding:"required,max=255"`
	Content  string  `json:"content" binding:"required"`
	ImageURL *string `json:"image_url"`
}

type PostUpdateDTO struct {
	Title    *string `json:"title" binding:"omitempty,max=255"`
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
}

type PostListQueryDTO struct {
	LastSeenID *uint64 `form:"last_seen_id"`
	Limit      int     `form:"limit"`
}

type AuthorDTO struct {
	Nickname string  `json:"nickname"`
	ImageURL *string `json:"image_url"`
}

type PostStatsDTO struct {
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	ViewCount    int64 `json:"view_count"`
}

type PostSummaryDTO struct {
	PostID    uint64       `json:"post_id"`
	Title     string       `json:"title"`
	Author    AuthorDTO    `json:"author"`
	CreatedAt string       `json:"created_at"`
	Stats     PostStatsDTO `json:"stats"`
}

type PostListDTO struct {
	Posts      []*PostSummaryDTO `json:"posts"`
	Pagination PaginationDTO     `json:"pagination"`
}

type PostDetailDTO struct {
	PostID    uint64       `json:"post_id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	ImageURL  *string      `json:"image_url"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
	Author    AuthorDTO    `json:"author"`
	Stats     PostStatsDTO `json:"stats"`
	IsLiked   bool         `json:"is_liked"`
	IsAuthor  bool         `json:"is_author"`
}

type PostCreateResultDTO struct {
	PostID uint64 `json:"post_id"`
}

type PostUpdateResultDTO struct {
	PostID uint64 `json:"post_id"`
}
