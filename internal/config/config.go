// Package config содержит загрузку и валидацию конфигурации.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Драйверы хранилища
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config представляет конфигурацию приложения
type Config struct {
	// HTTP
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	GzipEnabled     bool
	GinMode         string

	// Database
	Database DatabaseConfig

	// Security
	SecretKey   string
	APIKey      string
	APIKeyHash  string
	CSRFEnabled bool

	// Rate limit
	RateLimit RateLimitConfig

	// Health
	HealthPort         string
	HealthCheckEnabled bool

	// Telegram
	TelegramBotToken string
	TelegramChatID   int64

	// Logging
	LogLevel  string
	LogOutput string
	LogPath   string

	// App Data Directory
	AppDataDir string
}

// DatabaseConfig представляет конфигурацию хранилища
type DatabaseConfig struct {
	Driver     string
	DSN        string
	Debug      bool
	MaxRetries int
	RetryDelay time.Duration
}

// RateLimitConfig представляет конфигурацию ограничения запросов
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	config := &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":5000"),
		ReadTimeout:     getEnvDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 15*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		GzipEnabled:     getEnvBool("GZIP_ENABLED", true),
		GinMode:         getEnv("GIN_MODE", "release"),
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", DriverSQLite),
			DSN:        getEnv("DB_DSN", "file:cafes.db?_pragma=busy_timeout(5000)"),
			Debug:      getEnvBool("DB_DEBUG", false),
			MaxRetries: getEnvInt("DB_MAX_RETRIES", 10),
			RetryDelay: getEnvDuration("DB_RETRY_DELAY", 5*time.Second),
		},
		SecretKey:   getEnv("SECRET_KEY", ""),
		APIKey:      getEnv("API_KEY", ""),
		APIKeyHash:  getEnv("API_KEY_HASH", ""),
		CSRFEnabled: getEnvBool("CSRF_ENABLED", true),
		RateLimit: RateLimitConfig{
			Enabled:  getEnvBool("RATE_LIMIT_ENABLED", true),
			Requests: getEnvInt("RATE_LIMIT_REQUESTS", 30),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		HealthPort:         getEnv("HEALTH_PORT", "8081"),
		HealthCheckEnabled: getEnvBool("HEALTH_CHECK_ENABLED", true),
		TelegramBotToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:     getEnvInt64("TELEGRAM_CHAT_ID", 0),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogOutput:          getEnv("LOG_OUTPUT", "both"),
		LogPath:            getEnv("LOG_PATH", ""),
		AppDataDir:         getEnv("APP_DATA_DIR", "./data"),
	}

	// Валидация обязательных полей
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}

	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Requests <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
		}
		if c.RateLimit.Window <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}

	if c.HealthCheckEnabled {
		port, err := strconv.Atoi(c.HealthPort)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("HEALTH_PORT must be a valid port, got %q", c.HealthPort)
		}
	}

	if (c.TelegramBotToken == "") != (c.TelegramChatID == 0) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}

	return nil
}

// GetAppDataDir возвращает директорию данных приложения
func (c *Config) GetAppDataDir() string {
	return c.AppDataDir
}

// NotificationsEnabled сообщает, настроены ли уведомления в Telegram
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvInt64 получает переменную окружения как int64
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как time.Duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
