package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Webhook WebhookConfig
	Listen  ListenConfig
	Log     LogConfig
}

type APIConfig struct {
	Key                   string
	BaseURL               string
	HTTPTimeout           time.Duration
	MaxConcurrentRequests int
}

type WebhookConfig struct {
	SigningKey string
	Tolerance  time.Duration
}

type ListenConfig struct {
	Host string
	Port string
	Path string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	apiKey := os.Getenv("SNIPPE_API_KEY")
	if apiKey == "" {
		return nil, errors.New("SNIPPE_API_KEY environment variable is required")
	}

	return &Config{
		API: APIConfig{
			Key:                   apiKey,
			BaseURL:               getEnv("SNIPPE_BASE_URL", ""),
			HTTPTimeout:           getSecondsEnv("SNIPPE_HTTP_TIMEOUT_SECONDS", 30*time.Second),
			MaxConcurrentRequests: getIntEnv("SNIPPE_MAX_CONCURRENT_REQUESTS", 8),
		},
		Webhook: WebhookConfig{
			SigningKey: getEnv("SNIPPE_WEBHOOK_SIGNING_KEY", ""),
			Tolerance:  getSecondsEnv("SNIPPE_WEBHOOK_TOLERANCE_SECONDS", 300*time.Second),
		},
		Listen: ListenConfig{
			Host: getEnv("SNIPPE_LISTEN_HOST", "0.0.0.0"),
			Port: getEnv("SNIPPE_LISTEN_PORT", "8484"),
			Path: getEnv("SNIPPE_LISTEN_PATH", "/webhooks/snippe"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
