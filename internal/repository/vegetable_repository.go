package repository

import (
	"context"

	"garden-go/internal/models"

	"gorm.io/gorm"
)

// VegetableRepository 蔬菜数据访问层
type VegetableRepository struct {
	db *gorm.DB
}

// NewVegetableRepository 创建蔬菜Repository
func NewVegetableRepository(db *gorm.DB) *VegetableRepository {
	return &VegetableRepository{db: db}
}

// WithTx 返回绑定到事务的Repository
func (r *VegetableRepository) WithTx(tx *gorm.DB) *VegetableRepository {
	return &VegetableRepository{db: tx}
}

// Create 创建蔬菜
func (r *VegetableRepository) Create(ctx context.Context, vegetable *models.Vegetable) error {
	return r.db.WithContext(ctx).Create(vegetable).Error
}

// GetByID 根据ID获取蔬菜
func (r *VegetableRepository) GetByID(ctx context.Context, id uint) (*models.Vegetable, error) {
	var vegetable models.Vegetable
	err := r.db.WithContext(ctx).First(&vegetable, id).Error
	if err != nil {
		return nil, err
	}
	return &vegetable, nil
}

// GetByIDs 根据ID列表获取蔬菜，按传入顺序返回，不存在的ID跳过
func (r *VegetableRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Vegetable, error) {
	if len(ids) == 0 {
		return []models.Vegetable{}, nil
	}

	var found []models.Vegetable
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Vegetable, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}

	ordered := make([]models.Vegetable, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

// CountByOwner 统计用户的蔬菜数量
func (r *VegetableRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vegetable{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// UpdateAge 更新种植天数
func (r *VegetableRepository) UpdateAge(ctx context.Context, id uint, age int) error {
	return r.db.WithContext(ctx).Model(&models.Vegetable{}).Where("id = ?", id).Update("vegetable_age", age).Error
}
