package service

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"garden-go/internal/config"
	"garden-go/internal/models"
	"garden-go/internal/repository"
	"garden-go/internal/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db            *gorm.DB
	userRepo      *repository.UserRepository
	vegetableRepo *repository.VegetableRepository
	gardenRepo    *repository.GardenRepository
	logger        *logrus.Logger
	jwt           *utils.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	utils.PasswordCost = 4

	db, err := models.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "garden.sqlite"),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &testEnv{
		db:            db,
		userRepo:      repository.NewUserRepository(db),
		vegetableRepo: repository.NewVegetableRepository(db),
		gardenRepo:    repository.NewGardenRepository(db),
		logger:        logger,
		jwt:           utils.NewJWTManager("test-secret", "HS256", time.Hour),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:          username,
		PasswordHash:      "unused",
		OwnedVegetableIDs: models.OwnedIDs{},
		LoginTime:         time.Now().UTC(),
	}
	require.NoError(t, e.userRepo.Create(context.Background(), user))
	return user
}

func fixedClock(value string) func() time.Time {
	t, err := time.Parse(utils.PlantingDateLayout, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t.Add(12 * time.Hour) }
}
