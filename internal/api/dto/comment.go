package dto

type CommentCreateDTO struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type CommentUpdateDTO struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type CommentListQueryDTO struct {
	LastSeenID *uint64 `form:"last_seen_id"`
	Limit      int     `form:"limit"`
}

type CommentInfoDTO struct {
	CommentID uint64    `json:"comment_id"`
	Content   string    `json:"content"`
	Author    AuthorDTO `json:"author"`
	CreatedAt string    `json:"created_at"`
	IsAuthor  bool      `json:"is_author"`
}

type CommentListDTO struct {
	Comments   []*CommentInfoDTO `json:"comments"`
	Pagination PaginationDTO     `json:"pagination"`
}

type CommentCreateResultDTO struct {
	Comment      *CommentInfoDTO `json:"comment"`
	CommentCount int64           `json:"comment_count"`
}

type CommentUpdateResultDTO struct {
	CommentID uint64 `json:"comment_id"`
}

type CommentDeleteResultDTO struct {
	CommentCount int64 `json:"comment_count"`
}
