package dto

import "garden-go/internal/models"

// GardenUpdateRequest 菜园读数，缺省字段使用默认值
type GardenUpdateRequest struct {
	GardenTemp  *float64 `json:"gardenTemp"`
	GardenHumid *float64 `json:"gardenHumid"`
	GardenWater *int     `json:"gardenWater" validate:"omitempty,min=0"`
	GardenImage []byte   `json:"gardenImage"`
}

// GardenResponse 菜园信息
type GardenResponse struct {
	ID          uint    `json:"id"`
	GardenTemp  float64 `json:"gardenTemp"`
	GardenHumid float64 `json:"gardenHumid"`
	GardenWater int     `json:"gardenWater"`
	GardenImage []byte  `json:"gardenImage"`
}

// NewGardenResponse 模型转换为响应
func NewGardenResponse(g *models.Garden) GardenResponse {
	return GardenResponse{
		ID:          g.ID,
		GardenTemp:  g.GardenTemp,
		GardenHumid: g.GardenHumid,
		GardenWater: g.GardenWater,
		GardenImage: g.GardenImage,
	}
}
