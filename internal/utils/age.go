package utils

import (
	"errors"
	"fmt"
	"time"
)

// PlantingDateLayout 种植日期格式
const PlantingDateLayout = "2006-01-02"

// plantingDateParseLayout 月和日可以省略前导零
const plantingDateParseLayout = "2006-1-2"

// ErrInvalidPlantingDate 种植日期格式错误
var ErrInvalidPlantingDate = errors.New("invalid planting date")

// ParsePlantingDate 解析 YYYY-MM-DD 格式的种植日期，也接受 2024-3-5
func ParsePlantingDate(value string) (time.Time, error) {
	t, err := time.Parse(plantingDateParseLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPlantingDate, value)
	}
	return t, nil
}

// ComputeVegetableAge 计算蔬菜的种植天数
//
// 只处理同月以及 10→11、11→12、10→12 三种跨月情况，其他跨月和跨年一律为 0。
// ok 为 false 表示不应更新已保存的天数：日期为空或结果为负数。
func ComputeVegetableAge(plantingDate string, now time.Time) (age int, ok bool, err error) {
	if plantingDate == "" {
		return 0, false, nil
	}

	planted, err := ParsePlantingDate(plantingDate)
	if err != nil {
		return 0, false, err
	}

	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	plantedMonth := planted.Month()
	currentMonth := today.Month()

	switch {
	case plantedMonth == currentMonth:
		age = daysBetween(planted, today)
	case plantedMonth < currentMonth:
		switch {
		case plantedMonth == time.October && currentMonth == time.November:
			age = (31 - planted.Day()) + today.Day()
		case plantedMonth == time.November && currentMonth == time.December:
			age = (30 - planted.Day()) + today.Day()
		case plantedMonth == time.October && currentMonth == time.December:
			age = (31 - planted.Day()) + 30 + today.Day()
		default:
			age = 0
		}
	default:
		age = 0
	}

	if age < 0 {
		return age, false, nil
	}
	return age, true, nil
}

// daysBetween 两个UTC零点日期之间的天数，time.Duration 超过约292年会溢出，因此按秒计算
func daysBetween(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / 86400)
}
