package service

import "errors"

// 业务错误，由handler映射为HTTP状态码
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrLoginFailed       = errors.New("login failed")
	ErrUsernameTaken     = errors.New("username already registered")
	ErrVegetableNotFound = errors.New("vegetable not found")
	ErrGardenNotFound    = errors.New("garden data not found")
	ErrRegistrationBusy  = errors.New("another plant registration is in progress")
)
