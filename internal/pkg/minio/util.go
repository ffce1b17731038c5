package minio

import (
	"community/internal/api/config"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// UploadTemp 上传文件到临时桶，返回对象名
func UploadTemp(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, TempBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// Promote 将临时桶中的对象复制到正式桶并删除临时对象
func Promote(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	_, err := Client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: MainBucket, Object: objectName},
		minio.CopySrcOptions{Bucket: TempBucket, Object: objectName},
	)
	if err != nil {
		return fmt.Errorf("failed to promote object: %w", err)
	}

	// 临时对象删除失败不影响结果，生命周期规则会兜底
	_ = Client.RemoveObject(ctx, TempBucket, objectName, minio.RemoveObjectOptions{})
	return nil
}

// DeleteFile 删除正式桶中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, MainBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetPublicURL 获取正式桶中对象的公共访问URL
func GetPublicURL(objectName string) string {
	cfg := config.Cfg.MinIO

	protocol := "http"
	if cfg.PublicUseSSL {
		protocol = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, cfg.PublicEndpoint, MainBucket, objectName)
}
