package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt 成本因子
const passwordHashCost = 12

// HashPassword 对明文密码做 bcrypt 哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 校验明文密码与 bcrypt 哈希是否匹配
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// IsPlainPassword 检查存储的密码是否为历史遗留的明文形式（用于登录时迁移）。
// bcrypt 哈希特征：以 $2a$/$2b$ 开头且长度为 60 字符。
func IsPlainPassword(password string) bool {
	if len(password) != 60 {
		return true
	}
	return !strings.HasPrefix(password, "$2a$") && !strings.HasPrefix(password, "$2b$")
}
