package handler

import (
	"community/internal/api/dto"
	"community/internal/pkg/response"
	"community/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.commentSvc.CreateComment(c.Request.Context(), userID, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *CommentHandler) GetCommentList(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var query dto.CommentListQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	comments, err := s.commentSvc.GetCommentList(c.Request.Context(), postID, query.LastSeenID, query.Limit, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comments)
}

func (s *CommentHandler) UpdateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, commentID, err := parseCommentPath(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.CommentUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.commentSvc.UpdateComment(c.Request.Context(), userID, postID, commentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, commentID, err := parseCommentPath(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.commentSvc.DeleteComment(c.Request.Context(), userID, postID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func parseCommentPath(c *gin.Context) (uint64, uint64, error) {
	postID, err := parsePostID(c)
	if err != nil {
		return 0, 0, err
	}
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return postID, commentID, nil
}
