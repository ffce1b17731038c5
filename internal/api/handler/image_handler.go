package handler

import (
	"community/internal/api/dto"
	"community/internal/pkg/response"
	"community/internal/pkg/util"
	"community/internal/service"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	imageSvc service.ImageService
}

func NewImageHandler(imageSvc service.ImageService) *ImageHandler {
	return &ImageHandler{
		imageSvc: imageSvc,
	}
}

// Upload 上传图片到临时区，返回的引用在发帖或编辑时提交后才转正
func (s *ImageHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	imageRef, err := s.imageSvc.UploadTemp(c.Request.Context(), file.Filename, reader, file.Size, contentType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ImageUploadResultDTO{ImageURL: imageRef})
}
