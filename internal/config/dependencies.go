package config

import (
	"context"
	"database/sql"

	"taskboard/configs"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
)

var (
	// Shared dependencies, initialized once at startup (or in TestMain).
	DB          *sql.DB
	App         configs.Config
	Validate    = validator.New()
	Ctx         = context.Background()
	RedisClient *redis.Client
)
