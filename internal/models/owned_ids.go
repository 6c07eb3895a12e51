package models

import (
	"database/sql/driver"
	"fmt"

	"gorm.io/datatypes"
)

// OwnedIDs 用户拥有的蔬菜ID，按注册顺序保存，允许重复
type OwnedIDs []uint

// Append 在末尾追加ID
func (o *OwnedIDs) Append(id uint) {
	*o = append(*o, id)
}

// Contains 是否包含ID
func (o OwnedIDs) Contains(id uint) bool {
	for _, v := range o {
		if v == id {
			return true
		}
	}
	return false
}

// Len 拥有数量
func (o OwnedIDs) Len() int {
	return len(o)
}

// FirstN 前n个ID的副本
func (o OwnedIDs) FirstN(n int) []uint {
	if n > len(o) {
		n = len(o)
	}
	if n < 0 {
		n = 0
	}
	out := make([]uint, n)
	copy(out, o[:n])
	return out
}

// FirstTwo 列表页只展示前两个
func (o OwnedIDs) FirstTwo() []uint {
	return o.FirstN(2)
}

// Scan 实现sql.Scanner接口
func (o *OwnedIDs) Scan(value interface{}) error {
	if value == nil {
		*o = OwnedIDs{}
		return nil
	}

	var ids datatypes.JSONSlice[uint]
	if err := ids.Scan(value); err != nil {
		return fmt.Errorf("解析拥有的蔬菜ID失败: %w", err)
	}
	if ids == nil {
		ids = datatypes.JSONSlice[uint]{}
	}
	*o = OwnedIDs(ids)
	return nil
}

// Value 实现driver.Valuer接口，空列表保存为 []
func (o OwnedIDs) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	raw, err := datatypes.NewJSONSlice([]uint(o)).Value()
	if err != nil {
		return nil, err
	}
	if b, ok := raw.([]byte); ok {
		return string(b), nil
	}
	return raw, nil
}
