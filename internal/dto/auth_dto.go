package dto

import "garden-go/internal/models"

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required" validate:"username"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Age      int    `json:"age" validate:"min=0,max=150"`
}

// LoginRequest 登录请求，用户名密码通过查询参数传递
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// UserResponse 用户信息，不返回密码
type UserResponse struct {
	ID                uint   `json:"id"`
	Username          string `json:"username"`
	Name              string `json:"name"`
	Age               int    `json:"age"`
	OwnedVegetableIDs []uint `json:"ownedVegetableId"`
}

// NewUserResponse 模型转换为响应
func NewUserResponse(user *models.User) UserResponse {
	owned := []uint(user.OwnedVegetableIDs)
	if owned == nil {
		owned = []uint{}
	}
	return UserResponse{
		ID:                user.ID,
		Username:          user.Username,
		Name:              user.Name,
		Age:               user.Age,
		OwnedVegetableIDs: owned,
	}
}
