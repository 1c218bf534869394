package models

import (
	"time"
)

// Task 家务任务模板（目录项）
type Task struct {
	ID             string    `gorm:"type:varchar(50);primary_key" json:"id"`
	Name           string    `gorm:"type:varchar(100)" json:"name"`
	PointValue     int       `gorm:"default:0" json:"pointValue"`         // 积分
	WeeklyCapacity int       `gorm:"default:1" json:"weeklyCapacity"`     // 每周可领取次数
	Rules          string    `gorm:"type:text" json:"rules"`              // 任务规则说明
	CreatedAt      time.Time `json:"createdAt"`
}
