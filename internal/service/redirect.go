package service

import (
	"fmt"

	"garden-go/internal/models"
)

// 重定向目标
const (
	PlantRegisterPath = "/api/me/plant"
	OwnedListPath     = "/api/me/ownedIds"
)

// VegetableDetailPath 蔬菜详情页地址
func VegetableDetailPath(id uint) string {
	return fmt.Sprintf("/api/me/%d", id)
}

// SelectRedirect 根据拥有数量选择跳转：0个去注册，1个去详情，多个去列表
func SelectRedirect(owned models.OwnedIDs) string {
	switch owned.Len() {
	case 0:
		return PlantRegisterPath
	case 1:
		return VegetableDetailPath(owned[0])
	default:
		return OwnedListPath
	}
}
