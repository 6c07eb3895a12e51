package handler

import (
	"errors"
	"fmt"
	"strings"

	"garden-go/internal/dto"
	"garden-go/internal/middleware"
	"garden-go/internal/service"
	"garden-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register 用户注册
// @Summary 用户注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 200 {object} dto.UserResponse
// @Router /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if errors.Is(err, service.ErrUsernameTaken) {
		utils.BadRequest(c, "Username already registered")
		return
	}
	if err != nil {
		_ = c.Error(err)
		utils.InternalError(c, "Registration failed")
		return
	}

	utils.SuccessResponse(c, dto.NewUserResponse(user))
}

// Login 用户登录
// @Summary 用户登录
// @Tags 认证
// @Produce json
// @Param username query string true "用户名"
// @Param password query string true "密码"
// @Success 200 {object} dto.LoginResponse
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		// JSON请求体不完整时再读取查询参数
		if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
			utils.BadRequest(c, err.Error())
			return
		}
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if errors.Is(err, service.ErrLoginFailed) {
		utils.Unauthorized(c, "Login failed")
		return
	}
	if err != nil {
		_ = c.Error(err)
		utils.InternalError(c, "Login failed")
		return
	}

	utils.SuccessResponse(c, resp)
}

// GetMe 当前用户入口，按拥有数量跳转
// @Summary 当前用户
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Param redirect query bool false "是否跳转" default(true)
// @Success 200 {object} dto.UserResponse
// @Success 307
// @Router /api/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	redirect, err := parseQueryBool(c.DefaultQuery("redirect", "true"))
	if err != nil {
		utils.BadRequest(c, "redirect must be a boolean")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if errors.Is(err, service.ErrUserNotFound) {
		utils.Unauthorized(c, "User not found")
		return
	}
	if err != nil {
		_ = c.Error(err)
		utils.InternalError(c, "Failed to load user")
		return
	}

	if !redirect {
		utils.SuccessResponse(c, dto.NewUserResponse(user))
		return
	}
	utils.Redirect(c, service.SelectRedirect(user.OwnedVegetableIDs))
}

// parseQueryBool 解析布尔查询参数，接受 true/false、1/0、yes/no、on/off、y/n、t/f，不区分大小写
func parseQueryBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", value)
	}
}
