package handler

import (
	"community/internal/api/dto"
	"community/internal/pkg/response"
	"community/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) GetPostList(c *gin.Context) {
	var query dto.PostListQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.GetPostList(c.Request.Context(), query.LastSeenID, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, posts)
}

func (s *PostHandler) GetPostDetail(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	detail, err := s.postSvc.GetPostDetail(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.PostUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.postSvc.UpdatePost(c.Request.Context(), userID, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func parsePostID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("post_id"), 10, 64)
}
