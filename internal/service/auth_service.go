package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"garden-go/internal/dto"
	"garden-go/internal/models"
	"garden-go/internal/repository"
	"garden-go/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthService 认证服务
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *utils.JWTManager
	logger     logrus.FieldLogger
	now        func() time.Time
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo *repository.UserRepository, jwtManager *utils.JWTManager, logger logrus.FieldLogger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		logger:     logger.WithField("service", "auth"),
		now:        time.Now,
	}
}

// Register 用户注册
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	// 注册时间即为首次登录时间
	user := &models.User{
		Username:          req.Username,
		PasswordHash:      hashedPassword,
		Name:              req.Name,
		Age:               req.Age,
		OwnedVegetableIDs: models.OwnedIDs{},
		LoginTime:         s.now().UTC(),
	}

	// 用户名唯一由数据库索引保证，并发注册时只有一个成功
	err = s.userRepo.Create(ctx, user)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Info("用户注册")
	return user, nil
}

// Login 用户登录，成功后刷新登录时间并签发Token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLoginFailed
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	ok, err := utils.PasswordMatches(req.Password, user.PasswordHash)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("密码哈希格式错误")
		return nil, ErrLoginFailed
	}
	if !ok {
		return nil, ErrLoginFailed
	}

	loginTime := s.now().UTC()
	if err := s.userRepo.UpdateLoginTime(ctx, user.ID, loginTime); err != nil {
		return nil, fmt.Errorf("更新登录时间失败: %w", err)
	}
	user.LoginTime = loginTime

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("生成Token失败: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Info("用户登录")
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.NewUserResponse(user),
	}, nil
}

// GetUser 根据ID获取当前用户
func (s *AuthService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return user, nil
}

// LatestLoginUserID 最近登录的用户ID，用于无Token的兼容模式
func (s *AuthService) LatestLoginUserID(ctx context.Context) (uint, error) {
	user, err := s.userRepo.GetLatestLogin(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("查询最近登录用户失败: %w", err)
	}
	return user.ID, nil
}
