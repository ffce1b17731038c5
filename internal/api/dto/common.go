package dto

// Response 统一响应包装
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PaginationDTO 游标分页信息，LastSeenID 为本页最后一条的 ID
type PaginationDTO struct {
	LastSeenID *uint64 `json:"last_seen_id"`
	HasNext    bool    `json:"has_next"`
	Limit      int     `json:"limit"`
}
