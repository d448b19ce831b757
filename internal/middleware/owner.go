package middleware

import (
	"database/sql"
	"errors"

	"taskboard/internal/config"
	"taskboard/internal/repository"
	"taskboard/pkg/apperr"
	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VerifyOwner guards task routes with a :taskId parameter: the authenticated
// user must own the referenced task. It only authorizes; handlers re-fetch
// the task themselves.
func VerifyOwner(c *fiber.Ctx) error {
	user, ok := CurrentUser(c)
	if !ok {
		return apperr.New(fiber.StatusUnauthorized, "User not authenticated")
	}

	taskID, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return apperr.New(fiber.StatusBadRequest, "Invalid task id")
	}

	task, err := repository.FindTaskByID(config.DB, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(fiber.StatusNotFound, "Task not found")
		}
		return err
	}

	if task.UserID != user.ID {
		logger.SecurityLogger.Warn("Ownership check failed",
			zap.String("user_id", user.ID.String()),
			zap.String("task_id", taskID.String()),
		)
		return apperr.New(fiber.StatusForbidden, "You are not authorized to perform this")
	}

	return c.Next()
}
