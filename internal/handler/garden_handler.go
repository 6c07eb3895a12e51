package handler

import (
	"errors"
	"io"

	"garden-go/internal/dto"
	"garden-go/internal/service"
	"garden-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// GardenHandler 菜园处理器
type GardenHandler struct {
	gardenService *service.GardenService
}

// NewGardenHandler 创建菜园处理器
func NewGardenHandler(gardenService *service.GardenService) *GardenHandler {
	return &GardenHandler{
		gardenService: gardenService,
	}
}

// UpdateGarden 保存一条菜园读数
// @Summary 更新菜园
// @Tags 菜园
// @Accept json
// @Produce json
// @Param request body dto.GardenUpdateRequest false "菜园读数"
// @Success 200 {object} dto.GardenResponse
// @Router /garden [post]
func (h *GardenHandler) UpdateGarden(c *gin.Context) {
	var req dto.GardenUpdateRequest
	// 空请求体全部使用默认值
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequest(c, err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	garden, err := h.gardenService.Update(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		utils.InternalError(c, "Failed to save garden data")
		return
	}

	utils.SuccessResponse(c, dto.NewGardenResponse(garden))
}

// GetGarden 获取菜园信息
// @Summary 菜园信息
// @Tags 菜园
// @Produce json
// @Success 200 {object} dto.GardenResponse
// @Router /mygarden [get]
func (h *GardenHandler) GetGarden(c *gin.Context) {
	garden, err := h.gardenService.GetGarden(c.Request.Context())
	if errors.Is(err, service.ErrGardenNotFound) {
		utils.NotFound(c, "Garden data not found")
		return
	}
	if err != nil {
		_ = c.Error(err)
		utils.InternalError(c, "Failed to load garden data")
		return
	}

	utils.SuccessResponse(c, dto.NewGardenResponse(garden))
}
