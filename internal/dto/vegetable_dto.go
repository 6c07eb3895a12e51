package dto

import "garden-go/internal/models"

// PlantRequest 注册植物请求
type PlantRequest struct {
	VegetableName string `json:"vegetableName" binding:"required"`
	VegetableType string `json:"vegetableType"`
	VegetableChar string `json:"vegetableChar"`
	VegetableDate string `json:"vegetableDate" validate:"plantdate"`
}

// VegetableResponse 蔬菜信息
type VegetableResponse struct {
	ID             uint   `json:"id"`
	VegetableName  string `json:"vegetableName"`
	VegetableType  string `json:"vegetableType"`
	VegetableChar  string `json:"vegetableChar"`
	VegetableLevel int    `json:"vegetableLevel"`
	VegetableDate  string `json:"vegetableDate"`
	VegetableAge   *int   `json:"vegetableAge"`
}

// OwnedVegetableEntry 列表页中的一项
type OwnedVegetableEntry struct {
	VegetableID uint              `json:"vegetableId"`
	Vegetable   VegetableResponse `json:"vegetable"`
}

// NewVegetableResponse 模型转换为响应
func NewVegetableResponse(v *models.Vegetable) VegetableResponse {
	return VegetableResponse{
		ID:             v.ID,
		VegetableName:  v.VegetableName,
		VegetableType:  v.VegetableType,
		VegetableChar:  v.VegetableChar,
		VegetableLevel: v.VegetableLevel,
		VegetableDate:  v.VegetableDate,
		VegetableAge:   v.VegetableAge,
	}
}

// NewOwnedVegetableEntries 按顺序转换为列表项
func NewOwnedVegetableEntries(vegetables []models.Vegetable) []OwnedVegetableEntry {
	entries := make([]OwnedVegetableEntry, 0, len(vegetables))
	for i := range vegetables {
		entries = append(entries, OwnedVegetableEntry{
			VegetableID: vegetables[i].ID,
			Vegetable:   NewVegetableResponse(&vegetables[i]),
		})
	}
	return entries
}
