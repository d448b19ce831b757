package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBNameTest string
	RedisHost  string
	RedisPort  int

	Port        int
	FrontendURL string
	Env         string

	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration

	TokenEncryptionKey string
	CookieSecure       bool
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		// Only log when not running under go test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	cfg := Config{
		DBHost:     envString("DB_HOST", "localhost"),
		DBPort:     envInt("DB_PORT", 5432),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBNameTest: os.Getenv("DB_NAME_TEST"),
		RedisHost:  envString("REDIS_HOST", "localhost"),
		RedisPort:  envInt("REDIS_PORT", 6379),

		Port:        envInt("PORT", 1000),
		FrontendURL: envString("FRONTEND_URL", "http://localhost:3000"),
		Env:         envString("APP_ENV", "development"),

		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		AccessTokenExpiry:  envDuration("ACCESS_TOKEN_EXPIRY", 15*time.Minute),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		RefreshTokenExpiry: envDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),

		TokenEncryptionKey: os.Getenv("TOKEN_ENCRYPTION_KEY"),
		CookieSecure:       os.Getenv("COOKIE_SECURE") == "true",
	}

	// Token secrets have no sane default. Refusing to start beats issuing
	// tokens signed with an empty key.
	if cfg.AccessTokenSecret == "" {
		log.Fatal("ACCESS_TOKEN_SECRET is not set")
	}
	if cfg.RefreshTokenSecret == "" {
		log.Fatal("REFRESH_TOKEN_SECRET is not set")
	}
	if cfg.TokenEncryptionKey == "" {
		log.Fatal("TOKEN_ENCRYPTION_KEY is not set")
	}

	return cfg
}
