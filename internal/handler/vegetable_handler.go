package handler

import (
	"errors"
	"net/http"
	"strconv"

	"garden-go/internal/dto"
	"garden-go/internal/middleware"
	"garden-go/internal/service"
	"garden-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// VegetableHandler 蔬菜处理器
type VegetableHandler struct {
	vegetableService *service.VegetableService
}

// NewVegetableHandler 创建蔬菜处理器
func NewVegetableHandler(vegetableService *service.VegetableService) *VegetableHandler {
	return &VegetableHandler{
		vegetableService: vegetableService,
	}
}

// RegisterPlant 为当前用户注册植物
// @Summary 注册植物
// @Tags 蔬菜
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PlantRequest true "植物信息"
// @Success 200 {object} dto.VegetableResponse
// @Router /api/me/plant [post]
func (h *VegetableHandler) RegisterPlant(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req dto.PlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	vegetable, err := h.vegetableService.RegisterPlant(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponse(c, dto.NewVegetableResponse(vegetable))
}

// GetVegetable 获取当前用户拥有的蔬菜
// @Summary 蔬菜详情
// @Tags 蔬菜
// @Produce json
// @Security BearerAuth
// @Param id path int true "蔬菜ID"
// @Success 200 {object} dto.VegetableResponse
// @Router /api/me/{id} [get]
func (h *VegetableHandler) GetVegetable(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Vegetable id must be an integer")
		return
	}

	vegetable, err := h.vegetableService.GetOwned(c.Request.Context(), userID, uint(id))
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponse(c, dto.NewVegetableResponse(vegetable))
}

// ListOwned 列出前两个拥有的蔬菜，只有一个时跳转到详情
// @Summary 拥有的蔬菜
// @Tags 蔬菜
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.OwnedVegetableEntry
// @Success 307
// @Router /api/me/ownedIds [get]
func (h *VegetableHandler) ListOwned(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	listing, err := h.vegetableService.ListFirstTwo(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if listing.Owned.Len() == 1 {
		utils.Redirect(c, service.VegetableDetailPath(listing.Owned[0]))
		return
	}

	utils.SuccessResponse(c, dto.NewOwnedVegetableEntries(listing.Vegetables))
}

// PlantMethodNotAllowed 跳转到注册页的GET请求只返回405，避免被当作蔬菜ID
func (h *VegetableHandler) PlantMethodNotAllowed(c *gin.Context) {
	c.Header("Allow", http.MethodPost)
	utils.ErrorResponse(c, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func (h *VegetableHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		utils.Unauthorized(c, "User not found")
	case errors.Is(err, service.ErrVegetableNotFound):
		utils.NotFound(c, "Vegetable not found")
	case errors.Is(err, service.ErrRegistrationBusy):
		utils.Conflict(c, "Another plant registration is in progress")
	case errors.Is(err, utils.ErrInvalidPlantingDate):
		utils.BadRequest(c, "vegetableDate must be a YYYY-MM-DD date")
	default:
		_ = c.Error(err)
		utils.InternalError(c, "Internal server error")
	}
}
