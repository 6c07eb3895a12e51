package repository

import (
	"context"

	"garden-go/internal/models"

	"gorm.io/gorm"
)

// GardenRepository 菜园数据访问层
type GardenRepository struct {
	db *gorm.DB
}

// NewGardenRepository 创建菜园Repository
func NewGardenRepository(db *gorm.DB) *GardenRepository {
	return &GardenRepository{db: db}
}

// Create 保存一条菜园读数
func (r *GardenRepository) Create(ctx context.Context, garden *models.Garden) error {
	return r.db.WithContext(ctx).Create(garden).Error
}

// GetFirst 获取第一条菜园记录
func (r *GardenRepository) GetFirst(ctx context.Context) (*models.Garden, error) {
	var garden models.Garden
	err := r.db.WithContext(ctx).Order("id ASC").First(&garden).Error
	if err != nil {
		return nil, err
	}
	return &garden, nil
}
