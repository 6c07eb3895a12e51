package models

// 菜园默认读数
const (
	DefaultGardenTemp  = 25.0
	DefaultGardenHumid = 50.0
	DefaultGardenWater = 60
)

// Garden 菜园环境读数，只读取第一行
// 默认值由服务层填充，零值读数需要原样保存
type Garden struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	GardenTemp  float64 `json:"gardenTemp"`
	GardenHumid float64 `json:"gardenHumid"`
	GardenWater int     `json:"gardenWater"`
	GardenImage []byte  `json:"gardenImage"`
}

// TableName 指定表名
func (Garden) TableName() string {
	return "gardens"
}
