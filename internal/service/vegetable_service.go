package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"garden-go/internal/dto"
	"garden-go/internal/models"
	"garden-go/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OwnedListing 列表页数据
type OwnedListing struct {
	Owned      models.OwnedIDs
	Vegetables []models.Vegetable
}

// VegetableService 蔬菜服务
type VegetableService struct {
	db            *gorm.DB
	userRepo      *repository.UserRepository
	vegetableRepo *repository.VegetableRepository
	guard         OwnershipGuard
	logger        logrus.FieldLogger
	now           func() time.Time
}

// NewVegetableService 创建蔬菜服务
func NewVegetableService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	vegetableRepo *repository.VegetableRepository,
	guard OwnershipGuard,
	logger logrus.FieldLogger,
) *VegetableService {
	if guard == nil {
		guard = NewLocalGuard()
	}
	return &VegetableService{
		db:            db,
		userRepo:      userRepo,
		vegetableRepo: vegetableRepo,
		guard:         guard,
		logger:        logger.WithField("service", "vegetable"),
		now:           time.Now,
	}
}

// SetClock 替换时钟
func (s *VegetableService) SetClock(now func() time.Time) {
	s.now = now
}

// RegisterPlant 注册植物并追加到用户的拥有列表
//
// 插入蔬菜和更新拥有列表在同一事务中完成。重复请求会产生重复记录。
func (s *VegetableService) RegisterPlant(ctx context.Context, userID uint, req *dto.PlantRequest) (*models.Vegetable, error) {
	vegetable := &models.Vegetable{
		VegetableName:  req.VegetableName,
		VegetableType:  req.VegetableType,
		VegetableChar:  req.VegetableChar,
		VegetableLevel: models.DefaultVegetableLevel,
		VegetableDate:  req.VegetableDate,
		OwnerID:        userID,
	}
	if err := vegetable.CalculateAge(s.now()); err != nil {
		return nil, err
	}

	unlock, err := s.guard.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = repository.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)

		// 事务内重新读取，避免覆盖其他请求的追加
		owner, err := users.GetByID(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("查询用户失败: %w", err)
		}

		vegetables := s.vegetableRepo.WithTx(tx)
		if err := vegetables.Create(ctx, vegetable); err != nil {
			return fmt.Errorf("创建蔬菜失败: %w", err)
		}

		owner.OwnedVegetableIDs.Append(vegetable.ID)
		if err := users.UpdateOwnedVegetableIDs(ctx, owner.ID, owner.OwnedVegetableIDs); err != nil {
			return fmt.Errorf("更新拥有列表失败: %w", err)
		}

		s.checkOwnedCount(ctx, vegetables, owner)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"vegetable_id": vegetable.ID,
	}).Info("注册植物")
	return vegetable, nil
}

// GetOwned 获取用户拥有的某个蔬菜
func (s *VegetableService) GetOwned(ctx context.Context, userID, vegetableID uint) (*models.Vegetable, error) {
	owner, err := s.loadOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !owner.OwnedVegetableIDs.Contains(vegetableID) {
		return nil, ErrVegetableNotFound
	}

	vegetable, err := s.vegetableRepo.GetByID(ctx, vegetableID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVegetableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询蔬菜失败: %w", err)
	}
	if vegetable.OwnerID != owner.ID {
		return nil, ErrVegetableNotFound
	}

	s.refreshAge(ctx, vegetable)
	return vegetable, nil
}

// ListFirstTwo 获取拥有列表中的前两个蔬菜
func (s *VegetableService) ListFirstTwo(ctx context.Context, userID uint) (*OwnedListing, error) {
	owner, err := s.loadOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	vegetables, err := s.vegetableRepo.GetByIDs(ctx, owner.OwnedVegetableIDs.FirstTwo())
	if err != nil {
		return nil, fmt.Errorf("查询蔬菜列表失败: %w", err)
	}
	for i := range vegetables {
		s.refreshAge(ctx, &vegetables[i])
	}

	return &OwnedListing{
		Owned:      owner.OwnedVegetableIDs,
		Vegetables: vegetables,
	}, nil
}

// checkOwnedCount 拥有列表长度应等于该用户的蔬菜记录数，不一致只记录日志
func (s *VegetableService) checkOwnedCount(ctx context.Context, vegetables *repository.VegetableRepository, owner *models.User) {
	count, err := vegetables.CountByOwner(ctx, owner.ID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", owner.ID).Warn("统计蔬菜数量失败")
		return
	}
	if count != int64(owner.OwnedVegetableIDs.Len()) {
		s.logger.WithFields(logrus.Fields{
			"user_id":   owner.ID,
			"owned_ids": owner.OwnedVegetableIDs.Len(),
			"records":   count,
		}).Warn("拥有列表与蔬菜记录数量不一致")
	}
}

func (s *VegetableService) loadOwner(ctx context.Context, userID uint) (*models.User, error) {
	owner, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return owner, nil
}

// refreshAge 读取时按当前日期重新计算天数，有变化则写回
func (s *VegetableService) refreshAge(ctx context.Context, vegetable *models.Vegetable) {
	var before *int
	if vegetable.VegetableAge != nil {
		v := *vegetable.VegetableAge
		before = &v
	}

	if err := vegetable.CalculateAge(s.now()); err != nil {
		s.logger.WithError(err).WithField("vegetable_id", vegetable.ID).Warn("计算天数失败")
		return
	}
	if vegetable.VegetableAge == nil || (before != nil && *before == *vegetable.VegetableAge) {
		return
	}

	if err := s.vegetableRepo.UpdateAge(ctx, vegetable.ID, *vegetable.VegetableAge); err != nil {
		s.logger.WithError(err).WithField("vegetable_id", vegetable.ID).Warn("保存天数失败")
	}
}
