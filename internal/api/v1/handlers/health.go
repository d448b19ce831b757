package handlers

import (
	"time"

	"taskboard/internal/config"

	"github.com/gofiber/fiber/v2"
)

var startTime = time.Now()

// CheckHealth reports process uptime plus database and cache reachability.
func CheckHealth(c *fiber.Ctx) error {
	dbStatus := "down"
	if config.DB != nil && config.DB.Ping() == nil {
		dbStatus = "up"
	}

	redisStatus := "down"
	if config.RedisClient != nil && config.RedisClient.Ping(config.Ctx).Err() == nil {
		redisStatus = "up"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "ok",
		"uptime":    time.Since(startTime).Seconds(),
		"database":  dbStatus,
		"redis":     redisStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
