package handler

import (
	"community/internal/api/dto"
	"community/internal/pkg/response"
	"community/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.userSvc.Register(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *UserHandler) Login(c *gin.Context) {
	var req dto.CredentialDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.userSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *UserHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *UserHandler) GetMe(c *gin.Context) {
	userID := c.GetUint64("user_id")

	info, err := s.userSvc.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, info)
}
