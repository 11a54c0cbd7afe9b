package main

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// cliConfig holds CLI configuration loaded from a .env file or the process
// environment. Persistent flags override these values per invocation.
type cliConfig struct {
	Region         string
	Endpoint       string
	AccessKey      string
	SecretKey      string
	SessionToken   string
	ForcePathStyle bool
	Concurrency    int
	Timeout        time.Duration
}

func loadConfig() (*cliConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment variables only")
	}

	cfg := &cliConfig{
		Region:         getEnv("S3MIRROR_REGION", ""),
		Endpoint:       getEnv("S3MIRROR_ENDPOINT", ""),
		AccessKey:      getEnv("S3MIRROR_ACCESS_KEY", ""),
		SecretKey:      getEnv("S3MIRROR_SECRET_KEY", ""),
		SessionToken:   getEnv("S3MIRROR_SESSION_TOKEN", ""),
		ForcePathStyle: getEnvBool("S3MIRROR_FORCE_PATH_STYLE", false),
		Concurrency:    getEnvInt("S3MIRROR_CONCURRENCY", 0),
		Timeout:        getEnvDuration("S3MIRROR_TIMEOUT", 0),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
