package service

import (
	"community/internal/pkg/minio"
	"context"
	"io"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TempImagePrefix 临时图片引用的前缀，客户端携带该前缀的引用表示尚未绑定帖子
const TempImagePrefix = "temp/"

type ImageService interface {
	UploadTemp(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	PromoteToPermanent(ctx context.Context, imageRef string) (string, error)
	DeleteBlob(ctx context.Context, imageURL string)
}

type imageServiceImpl struct{}

func NewImageService() ImageService {
	return &imageServiceImpl{}
}

// UploadTemp 上传图片到临时桶，返回带 temp/ 前缀的引用
func (s *imageServiceImpl) UploadTemp(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrImageInvalid
	}

	ext := path.Ext(filename)
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	key, err := minio.UploadTemp(ctx, objectName, reader, size, contentType)
	if err != nil {
		log.ErrorContext(ctx, "MinIO upload failed", "err", err)
		return "", UnExpectedError
	}

	return TempImagePrefix + key, nil
}

// PromoteToPermanent 将临时引用转正，返回可直接入库的公共URL；
// 非 temp/ 前缀的引用视为已转正，原样返回
func (s *imageServiceImpl) PromoteToPermanent(ctx context.Context, imageRef string) (string, error) {
	if !strings.HasPrefix(imageRef, TempImagePrefix) {
		return imageRef, nil
	}

	objectName := strings.TrimPrefix(imageRef, TempImagePrefix)
	if objectName == "" {
		return "", ErrImageInvalid
	}

	if err := minio.Promote(ctx, objectName); err != nil {
		log.ErrorContext(ctx, "图片转正失败", "object", objectName, "err", err)
		return "", UnExpectedError
	}

	return minio.GetPublicURL(objectName), nil
}

// DeleteBlob 删除正式桶中的图片对象，失败只记日志
func (s *imageServiceImpl) DeleteBlob(ctx context.Context, imageURL string) {
	objectName := objectNameFromURL(imageURL)
	if objectName == "" {
		return
	}
	if err := minio.DeleteFile(ctx, objectName); err != nil {
		log.WarnContext(ctx, "删除图片对象失败", "object", objectName, "err", err)
	}
}

// objectNameFromURL 从公共URL中还原对象名
func objectNameFromURL(imageURL string) string {
	marker := "/" + minio.MainBucket + "/"
	idx := strings.Index(imageURL, marker)
	if idx < 0 {
		return ""
	}
	return imageURL[idx+len(marker):]
}
