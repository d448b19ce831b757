package middleware

import (
	"database/sql"
	"errors"

	"taskboard/internal/config"
	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/internal/token"
	"taskboard/pkg/apperr"
	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const currentUserKey = "currentUser"

// UseAccessToken authenticates the request from the access-token cookie and
// loads the user into Locals. Verification is never cached across requests.
func UseAccessToken(c *fiber.Ctx) error {
	cookie := c.Cookies("accessToken")
	if cookie == "" {
		return apperr.New(fiber.StatusBadRequest, "Access token not found")
	}

	claims, err := token.Verify(cookie, config.App.AccessTokenSecret)
	if err != nil {
		logger.SecurityLogger.Warn("Access token rejected", zap.Error(err))
		if errors.Is(err, token.ErrExpiredToken) {
			return apperr.New(fiber.StatusUnauthorized, "Access token has expired")
		}
		return apperr.New(fiber.StatusUnauthorized, "Invalid access token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return apperr.New(fiber.StatusUnauthorized, "Invalid access token")
	}

	user, err := repository.FindUserByID(config.DB, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(fiber.StatusBadRequest, "No such user exists")
		}
		return err
	}

	c.Locals(currentUserKey, user)
	return c.Next()
}

// CurrentUser returns the user attached by UseAccessToken.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(currentUserKey).(*models.User)
	return user, ok
}
