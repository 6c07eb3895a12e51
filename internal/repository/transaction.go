package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transaction 在同一事务中执行fn，fn返回错误时回滚
func Transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}
