package util

import (
	"io"
	"net/http"
)

// GetSafeContentType 读取文件头嗅探真实类型，不信任客户端声明的 Content-Type；
// 嗅探后把读取位置拨回开头
func GetSafeContentType(seeker io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := seeker.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return http.DetectContentType(buf[:n]), nil
}

// PtrUint64 用于将 uint64 转换为 *uint64
func PtrUint64(i uint64) *uint64 {
	return &i
}

// PtrString 用于将 string 转换为 *string
func PtrString(s string) *string {
	return &s
}
