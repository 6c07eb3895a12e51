package models

import (
	"fmt"

	"garden-go/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 全局数据库实例
var DB *gorm.DB

// InitDB 初始化数据库
func InitDB(cfg *config.Config) error {
	db, err := Open(cfg.Database)
	if err != nil {
		return err
	}
	DB = db

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(DB); err != nil {
			return fmt.Errorf("自动迁移失败: %w", err)
		}
	}

	return nil
}

// Open 按配置的驱动打开数据库
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite, "":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // 使用静默模式
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	return db, nil
}

// AutoMigrate 自动迁移数据库表，不存在时创建
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Vegetable{},
		&Garden{},
	)
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return DB
}
