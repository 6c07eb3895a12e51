package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost bcrypt计算强度，测试中可调低
var PasswordCost = bcrypt.DefaultCost

// HashPassword 哈希密码
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// PasswordMatches 验证密码，哈希格式错误时返回error
func PasswordMatches(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
