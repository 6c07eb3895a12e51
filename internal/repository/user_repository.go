package repository

import (
	"context"
	"time"

	"garden-go/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问层
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户Repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx 返回绑定到事务的Repository
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// Create 创建用户，用户名冲突时返回 gorm.ErrDuplicatedKey
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if isDuplicateKey(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

// GetByID 根据ID获取用户
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名获取用户
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetLatestLogin 获取最近登录的用户
func (r *UserRepository) GetLatestLogin(ctx context.Context) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Order("login_time DESC").Order("id DESC").First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLoginTime 更新登录时间
func (r *UserRepository) UpdateLoginTime(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("login_time", at).Error
}

// UpdateOwnedVegetableIDs 只更新拥有的蔬菜列表
func (r *UserRepository) UpdateOwnedVegetableIDs(ctx context.Context, id uint, ids models.OwnedIDs) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("owned_vegetable_ids", ids).Error
}
