package repository

import (
	"context"

	"github.com/leon37/TaskNest/internal/model"
	"gorm.io/gorm"
)

// TaskRepo 定义接口 (为了以后方便 Mock)
// Complete/Delete 返回受影响行数：0 行表示任务不存在或不属于该用户，
// 由上层统一处理，数据库层不区分这两种情况
type TaskRepo interface {
	Create(ctx context.Context, task *model.Task) error
	ListByUser(ctx context.Context, userID uint) ([]model.Task, error)
	CompleteByOwner(ctx context.Context, taskID, userID uint) (int64, error)
	DeleteByOwner(ctx context.Context, taskID, userID uint) (int64, error)
}

// taskRepo 实现
type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepository 构造函数
func NewTaskRepository(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

// Create 插入一条任务
func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	// WithContext 确保请求超时能传递到数据库层
	return r.db.WithContext(ctx).Create(task).Error
}

// ListByUser 只查当前用户的任务，顺序交给数据库
func (r *taskRepo) ListByUser(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CompleteByOwner 条件更新：id + user_id 同时匹配才生效
// 一条 UPDATE 语句完成归属校验和写入，原子性由 MySQL 保证
func (r *taskRepo) CompleteByOwner(ctx context.Context, taskID, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Update("completed", true)
	return result.RowsAffected, result.Error
}

// DeleteByOwner 条件删除，匹配语义与 CompleteByOwner 相同
func (r *taskRepo) DeleteByOwner(ctx context.Context, taskID, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&model.Task{})
	return result.RowsAffected, result.Error
}
