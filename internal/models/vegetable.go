package models

import (
	"time"

	"garden-go/internal/utils"
)

// DefaultVegetableLevel 新注册蔬菜的等级
const DefaultVegetableLevel = 2

// Vegetable 蔬菜模型
type Vegetable struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	VegetableName  string `gorm:"size:100" json:"vegetableName"`
	VegetableType  string `gorm:"size:100" json:"vegetableType"`
	VegetableChar  string `gorm:"size:255" json:"vegetableChar"`
	VegetableLevel int    `gorm:"default:2" json:"vegetableLevel"`
	VegetableDate  string `gorm:"size:10" json:"vegetableDate"`
	VegetableAge   *int   `json:"vegetableAge"`
	OwnerID        uint   `gorm:"not null;index" json:"owner_id"`
}

// TableName 指定表名
func (Vegetable) TableName() string {
	return "vegetables"
}

// CalculateAge 根据种植日期更新天数，日期为空或结果为负时保留原值
func (v *Vegetable) CalculateAge(now time.Time) error {
	age, ok, err := utils.ComputeVegetableAge(v.VegetableDate, now)
	if err != nil {
		return err
	}
	if ok {
		v.VegetableAge = &age
	}
	return nil
}
