package handler

import (
	"community/internal/pkg/response"
	"community/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeSvc service.LikeService
}

func NewLikeHandler(likeSvc service.LikeService) *LikeHandler {
	return &LikeHandler{
		likeSvc: likeSvc,
	}
}

func (s *LikeHandler) ToggleLike(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.likeSvc.Toggle(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
