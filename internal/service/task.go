package service

import (
	"context"
	"errors"

	"github.com/leon37/TaskNest/internal/model"
	"github.com/leon37/TaskNest/internal/repository"
)

// ErrTaskNotFound 任务不存在或不属于当前用户
// 两种情况对外必须表现一致，避免泄露别人任务的存在性
var ErrTaskNotFound = errors.New("task not found or not authorized")

type TaskService struct {
	taskRepo repository.TaskRepo
}

func NewTaskService(taskRepo repository.TaskRepo) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// Create 新建任务，归属写死为当前用户
func (s *TaskService) Create(ctx context.Context, userID uint, title string) (*model.Task, error) {
	task := &model.Task{
		Title:  title,
		UserID: userID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List 只返回当前用户的任务
func (s *TaskService) List(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

// Complete 标记完成。0 行命中统一按 ErrTaskNotFound 处理
func (s *TaskService) Complete(ctx context.Context, userID, taskID uint) error {
	rows, err := s.taskRepo.CompleteByOwner(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete 删除任务，匹配语义与 Complete 相同
func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	rows, err := s.taskRepo.DeleteByOwner(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}
