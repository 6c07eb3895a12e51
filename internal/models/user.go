package models

import (
	"time"
)

// User 用户模型
type User struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	Username          string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash      string    `gorm:"size:255;not null" json:"-"`
	Name              string    `gorm:"size:100" json:"name"`
	Age               int       `json:"age"`
	OwnedVegetableIDs OwnedIDs  `gorm:"type:text;not null;default:'[]'" json:"ownedVegetableId"`
	LoginTime         time.Time `gorm:"index" json:"login_time"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// 关联
	Vegetables []Vegetable `gorm:"foreignKey:OwnerID" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
