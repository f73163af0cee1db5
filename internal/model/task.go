package model

import "time"

// Task 任务表
// 所有读写都必须带上 UserID 条件，绝不允许只按 ID 操作
type Task struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 强制指定表名
func (Task) TableName() string {
	return "tasks"
}
