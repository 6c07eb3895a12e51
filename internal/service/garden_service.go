package service

import (
	"context"
	"errors"
	"fmt"

	"garden-go/internal/dto"
	"garden-go/internal/models"
	"garden-go/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GardenBroadcaster 推送新的菜园读数
type GardenBroadcaster interface {
	BroadcastJSON(v interface{}) error
}

// GardenService 菜园服务
type GardenService struct {
	gardenRepo  *repository.GardenRepository
	broadcaster GardenBroadcaster
	logger      logrus.FieldLogger
}

// NewGardenService 创建菜园服务，broadcaster可以为nil
func NewGardenService(gardenRepo *repository.GardenRepository, broadcaster GardenBroadcaster, logger logrus.FieldLogger) *GardenService {
	return &GardenService{
		gardenRepo:  gardenRepo,
		broadcaster: broadcaster,
		logger:      logger.WithField("service", "garden"),
	}
}

// Update 保存一条新的菜园读数
func (s *GardenService) Update(ctx context.Context, req *dto.GardenUpdateRequest) (*models.Garden, error) {
	garden := &models.Garden{
		GardenTemp:  models.DefaultGardenTemp,
		GardenHumid: models.DefaultGardenHumid,
		GardenWater: models.DefaultGardenWater,
		GardenImage: req.GardenImage,
	}
	if req.GardenTemp != nil {
		garden.GardenTemp = *req.GardenTemp
	}
	if req.GardenHumid != nil {
		garden.GardenHumid = *req.GardenHumid
	}
	if req.GardenWater != nil {
		garden.GardenWater = *req.GardenWater
	}

	if err := s.gardenRepo.Create(ctx, garden); err != nil {
		return nil, fmt.Errorf("保存菜园数据失败: %w", err)
	}

	if s.broadcaster != nil {
		if err := s.broadcaster.BroadcastJSON(dto.NewGardenResponse(garden)); err != nil {
			s.logger.WithError(err).Warn("推送菜园数据失败")
		}
	}

	s.logger.WithField("garden_id", garden.ID).Info("更新菜园数据")
	return garden, nil
}

// GetGarden 获取第一条菜园记录
func (s *GardenService) GetGarden(ctx context.Context) (*models.Garden, error) {
	garden, err := s.gardenRepo.GetFirst(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGardenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询菜园数据失败: %w", err)
	}
	return garden, nil
}
