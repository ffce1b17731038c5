package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var errEmptyPassword = errors.New("password cannot be empty")

// HashPassword 返回密码的bcrypt哈希, 空密码直接拒绝
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hashed), nil
}

// CheckPasswordHash 比对明文密码与存储哈希, 不匹配返回非nil错误
func CheckPasswordHash(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
