package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/middleware"
	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/pkg/apperr"
	"taskboard/pkg/logger"
	"taskboard/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func validStatus(status string) bool {
	switch status {
	case models.TaskStatusStarted, models.TaskStatusInProgress, models.TaskStatusCompleted:
		return true
	default:
		return false
	}
}

func taskCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("task:%s", id)
}

// cacheTask and dropCachedTask are best-effort: a cold or unreachable cache
// never fails the request.
func cacheTask(task *models.Task) {
	if config.RedisClient == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		return
	}
	if err := config.RedisClient.SetEX(config.Ctx, taskCacheKey(task.ID), data, time.Hour).Err(); err != nil {
		logger.ErrorLogger.Error("Error caching task", zap.Error(err))
	}
}

func dropCachedTask(id uuid.UUID) {
	if config.RedisClient == nil {
		return
	}
	if err := config.RedisClient.Del(config.Ctx, taskCacheKey(id)).Err(); err != nil {
		logger.ErrorLogger.Error("Error evicting cached task", zap.Error(err))
	}
}

func cachedTask(id uuid.UUID) *models.Task {
	if config.RedisClient == nil {
		return nil
	}
	data, err := config.RedisClient.Get(config.Ctx, taskCacheKey(id)).Result()
	if err != nil {
		return nil
	}
	var task models.Task
	if err := json.Unmarshal([]byte(data), &task); err != nil {
		return nil
	}
	return &task
}

func parseTaskID(c *fiber.Ctx) (uuid.UUID, error) {
	taskID, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return uuid.Nil, apperr.New(fiber.StatusBadRequest, "Invalid task id")
	}
	return taskID, nil
}

func CreateTask(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.New(fiber.StatusBadRequest, "Login first to create the task")
	}

	type CreateTaskRequest struct {
		TaskName    string     `json:"taskName" validate:"required"`
		TaskDetails string     `json:"taskDetails" validate:"required"`
		DueDate     *time.Time `json:"dueDate"`
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.New(fiber.StatusBadRequest, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return apperr.New(fiber.StatusBadRequest, "Please provide all the fields", err.Error())
	}

	taskName := normalize(req.TaskName)
	taskDetails := strings.TrimSpace(req.TaskDetails)
	if taskName == "" || taskDetails == "" {
		return apperr.New(fiber.StatusBadRequest, "Please provide all the fields")
	}

	dueDate := time.Now()
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	task := &models.Task{
		ID:          uuid.New(),
		UserID:      user.ID,
		TaskName:    taskName,
		TaskDetails: taskDetails,
		TaskStatus:  models.TaskStatusStarted,
		DueDate:     dueDate,
	}
	if err := repository.CreateTask(config.DB, task); err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return err
	}

	logger.AuditLogger.Info("Task created",
		zap.String("task_id", task.ID.String()),
		zap.String("user_id", user.ID.String()),
	)
	return response.Success(c, fiber.StatusCreated, task, "The task has been created successfully")
}

func UpdateTask(c *fiber.Ctx) error {
	taskID, err := parseTaskID(c)
	if err != nil {
		return err
	}

	type UpdateTaskRequest struct {
		NewTaskName    *string    `json:"newTaskName"`
		NewTaskDetails *string    `json:"newTaskDetails"`
		DueDate        *time.Time `json:"dueDate"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.New(fiber.StatusBadRequest, "Bad request")
	}

	if req.NewTaskName == nil && req.NewTaskDetails == nil && req.DueDate == nil {
		return apperr.New(fiber.StatusBadRequest, "There is nothing to update")
	}

	if req.NewTaskName != nil {
		name := normalize(*req.NewTaskName)
		if name == "" {
			return apperr.New(fiber.StatusBadRequest, "The task name cannot be empty")
		}
		req.NewTaskName = &name
	}
	if req.NewTaskDetails != nil {
		details := strings.TrimSpace(*req.NewTaskDetails)
		if details == "" {
			return apperr.New(fiber.StatusBadRequest, "The task details cannot be empty")
		}
		req.NewTaskDetails = &details
	}

	rows, err := repository.UpdateTaskFields(config.DB, taskID, req.NewTaskName, req.NewTaskDetails, req.DueDate)
	if err != nil {
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return err
	}
	if rows == 0 {
		return apperr.New(fiber.StatusBadRequest, "No task exists")
	}

	task, err := repository.FindTaskByID(config.DB, taskID)
	if err != nil {
		return err
	}

	dropCachedTask(taskID)
	cacheTask(task)

	logger.AuditLogger.Info("Task updated", zap.String("task_id", taskID.String()))
	return response.Success(c, fiber.StatusOK, task, "Task has been updated successfully")
}

func UpdateTaskStatus(c *fiber.Ctx) error {
	taskID, err := parseTaskID(c)
	if err != nil {
		return err
	}

	type UpdateStatusRequest struct {
		TaskStatus string `json:"taskStatus"`
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.New(fiber.StatusBadRequest, "Bad request")
	}

	status := strings.TrimSpace(req.TaskStatus)
	if status == "" {
		return apperr.New(fiber.StatusBadRequest, "No status found for updation")
	}
	if !validStatus(status) {
		return apperr.New(fiber.StatusBadRequest, "Invalid task status")
	}

	rows, err := repository.UpdateTaskStatus(config.DB, taskID, status)
	if err != nil {
		logger.ErrorLogger.Error("Error updating task status", zap.Error(err))
		return err
	}
	if rows == 0 {
		return apperr.New(fiber.StatusBadRequest, "No task exists")
	}

	task, err := repository.FindTaskByID(config.DB, taskID)
	if err != nil {
		return err
	}

	dropCachedTask(taskID)
	cacheTask(task)

	logger.AuditLogger.Info("Task status updated",
		zap.String("task_id", taskID.String()),
		zap.String("status", status),
	)
	return response.Success(c, fiber.StatusOK, task, "Task status updated successfully")
}

func GetTaskStatus(c *fiber.Ctx) error {
	taskID, err := parseTaskID(c)
	if err != nil {
		return err
	}

	if task := cachedTask(taskID); task != nil {
		return response.Success(c, fiber.StatusOK, task.TaskStatus, "Task status fetched successfully")
	}

	task, err := repository.FindTaskByID(config.DB, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(fiber.StatusBadRequest, "Sorry no task has been found")
		}
		return err
	}

	cacheTask(task)
	return response.Success(c, fiber.StatusOK, task.TaskStatus, "Task status fetched successfully")
}

func GetAllTasks(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.New(fiber.StatusUnauthorized, "User not authenticated")
	}

	tasks, err := repository.ListTasksByUser(config.DB, user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return err
	}

	return response.Success(c, fiber.StatusOK, tasks, "Tasks fetched successfully")
}

func DeleteTask(c *fiber.Ctx) error {
	taskID, err := parseTaskID(c)
	if err != nil {
		return err
	}

	rows, err := repository.DeleteTask(config.DB, taskID)
	if err != nil {
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return err
	}
	if rows == 0 {
		return apperr.New(fiber.StatusBadRequest, "No task exists")
	}

	dropCachedTask(taskID)

	logger.AuditLogger.Info("Task deleted", zap.String("task_id", taskID.String()))
	return response.Success(c, fiber.StatusOK, fiber.Map{}, "Task deleted successfully")
}
