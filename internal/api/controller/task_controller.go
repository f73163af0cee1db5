package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/leon37/TaskNest/internal/api/middleware"
	"github.com/leon37/TaskNest/internal/api/response"
	"github.com/leon37/TaskNest/internal/model"
	"github.com/leon37/TaskNest/internal/service"
)

type TaskController struct {
	service *service.TaskService // 依赖 Service
}

// NewTaskController 构造函数
func NewTaskController(s *service.TaskService) *TaskController {
	return &TaskController{service: s}
}

// TaskCreateRequest 定义前端传来的 JSON 参数结构
type TaskCreateRequest struct {
	Title string `json:"title"`
}

// Create 新建任务
// @Summary 新建任务
// @Description 创建一条归属当前用户的任务，初始为未完成
// @Tags Task
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TaskCreateRequest true "任务内容"
// @Success 201 {object} model.Task
// @Failure 400 {object} map[string]string "标题为空"
// @Router /tasks [post]
func (ctrl *TaskController) Create(c *gin.Context) {
	userID := c.GetUint(middleware.UserIDKey)

	var req TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body.")
		return
	}

	// 标题校验单独做，保证空串和缺失返回同一条文案
	if req.Title == "" {
		response.Error(c, http.StatusBadRequest, "task title is required.")
		return
	}

	task, err := ctrl.service.Create(c.Request.Context(), userID, req.Title)
	if err != nil {
		slog.Error("Create task failed", "userID", userID, "err", err)
		response.Error(c, http.StatusInternalServerError, "server error.")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// List 任务列表
// @Summary 获取任务列表
// @Description 返回当前用户的全部任务，不分页
// @Tags Task
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Task
// @Router /tasks [get]
func (ctrl *TaskController) List(c *gin.Context) {
	userID := c.GetUint(middleware.UserIDKey)

	tasks, err := ctrl.service.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("List tasks failed", "userID", userID, "err", err)
		response.Error(c, http.StatusInternalServerError, "server error.")
		return
	}

	// Find 没命中时返回空 slice，前端拿到的永远是数组
	if tasks == nil {
		tasks = []model.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// Complete 标记任务完成
// @Summary 标记任务完成
// @Description 把任务标记为已完成，仅限本人的任务
// @Tags Task
// @Produce json
// @Security BearerAuth
// @Param id path int true "任务 ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "任务不存在或不属于当前用户"
// @Router /tasks/{id} [put]
func (ctrl *TaskController) Complete(c *gin.Context) {
	userID := c.GetUint(middleware.UserIDKey)

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := ctrl.service.Complete(c.Request.Context(), userID, taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			// 任务不存在和不属于当前用户返回同一个 404，不暴露归属信息
			response.Error(c, http.StatusNotFound, "task not found or not authorized.")
			return
		}
		slog.Error("Complete task failed", "taskID", taskID, "userID", userID, "err", err)
		response.Error(c, http.StatusInternalServerError, "server error.")
		return
	}

	response.Message(c, "task marked as completed.")
}

// Delete 删除任务
// @Summary 删除任务
// @Description 删除本人的任务，404 语义与标记完成一致
// @Tags Task
// @Produce json
// @Security BearerAuth
// @Param id path int true "任务 ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "任务不存在或不属于当前用户"
// @Router /tasks/{id} [delete]
func (ctrl *TaskController) Delete(c *gin.Context) {
	userID := c.GetUint(middleware.UserIDKey)

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), userID, taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			response.Error(c, http.StatusNotFound, "task not found or not authorized.")
			return
		}
		slog.Error("Delete task failed", "taskID", taskID, "userID", userID, "err", err)
		response.Error(c, http.StatusInternalServerError, "server error.")
		return
	}

	response.Message(c, "task deleted successfully.")
}

// parseTaskID 解析路径里的任务 ID，非法时直接写好响应
func parseTaskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid task id.")
		return 0, false
	}
	return uint(id), true
}
