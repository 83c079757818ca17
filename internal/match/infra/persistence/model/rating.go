package model

import "time"

// Rating 是排行榜的一局成绩。
type Rating struct {
	ID        uint64    `gorm:"column:id;type:bigint UNSIGNED;primaryKey;autoIncrement;" json:"id"`
	Username  string    `gorm:"column:username;type:varchar(64);comment:玩家名;not null;index;" json:"username"`
	Points    int       `gorm:"column:points;type:int;comment:积分;not null;default:0;" json:"points"`
	Map       string    `gorm:"column:map;type:varchar(100);comment:地图名;not null;default:'';" json:"map"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"created_at"`
}

func (m *Rating) TableName() string {
	return "rating"
}
