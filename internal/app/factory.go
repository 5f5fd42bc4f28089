// Package app содержит фабрику компонентов приложения.
package app

import (
	"fmt"
	"os"

	"cafes/internal/auth"
	"cafes/internal/config"
	"cafes/internal/handlers"
	"cafes/internal/health"
	"cafes/internal/metrics"
	"cafes/internal/middleware"
	"cafes/internal/notify"
	"cafes/internal/service"
	"cafes/internal/storage"

	"go.uber.org/zap"
)

// ComponentFactory создает компоненты приложения
type ComponentFactory struct {
	config *config.Config
	logger *zap.Logger
}

// NewComponentFactory создает новую фабрику компонентов
func NewComponentFactory(config *config.Config, logger *zap.Logger) (*ComponentFactory, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &ComponentFactory{
		config: config,
		logger: logger,
	}, nil
}

// CreateAppDataDirectory создает директорию данных приложения
func (f *ComponentFactory) CreateAppDataDirectory() error {
	dataDir := f.config.GetAppDataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		f.logger.Error("Failed to create app data directory", zap.String("dir", dataDir), zap.Error(err))
		return fmt.Errorf("failed to create app data directory: %w", err)
	}
	f.logger.Info("App data directory ready", zap.String("dir", dataDir))
	return nil
}

// CreateDatabase создает подключение к базе данных
func (f *ComponentFactory) CreateDatabase() (*storage.DB, error) {
	db, err := storage.Open(f.config.Database, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	f.logger.Info("Database connection created successfully", zap.String("driver", db.Driver()))
	return db, nil
}

// CreateVerifier создает проверку API ключа для удаления кафе
func (f *ComponentFactory) CreateVerifier() (auth.KeyVerifier, error) {
	switch {
	case f.config.APIKeyHash != "":
		verifier, err := auth.NewBcryptVerifier(f.config.APIKeyHash)
		if err != nil {
			return nil, fmt.Errorf("failed to create key verifier: %w", err)
		}
		return verifier, nil

	case f.config.APIKey != "":
		f.logger.Warn("API_KEY is set in plain text; prefer API_KEY_HASH")
		verifier, err := auth.NewVerifierFromKey(f.config.APIKey, auth.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to create key verifier: %w", err)
		}
		return verifier, nil

	default:
		f.logger.Warn("No API key configured, closure reports will be rejected")
		return auth.DenyAll{}, nil
	}
}

// CreateNotifier создает канал уведомлений администратора
func (f *ComponentFactory) CreateNotifier() notify.Notifier {
	if !f.config.NotificationsEnabled() {
		f.logger.Info("Telegram notifications disabled, admin messages go to the log")
		return notify.NewLogNotifier(f.logger)
	}

	notifier, err := notify.NewTelegramNotifier(f.config.TelegramBotToken, f.config.TelegramChatID, f.logger)
	if err != nil {
		f.logger.Error("Failed to create Telegram notifier, falling back to log", zap.Error(err))
		return notify.NewLogNotifier(f.logger)
	}

	f.logger.Info("Telegram notifier created successfully")
	return notifier
}

// CreateServices создает все сервисы
func (f *ComponentFactory) CreateServices(db *storage.DB, verifier auth.KeyVerifier, notifier notify.Notifier) (*service.Services, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	services := service.NewServices(db.GetCafeRepository(), verifier, notifier, f.logger)
	f.logger.Info("Services created successfully")
	return services, nil
}

// CreateMiddleware создает middleware
func (f *ComponentFactory) CreateMiddleware(m metrics.Interface) *middleware.Middleware {
	middlewareManager := middleware.New(f.config, m, f.logger)
	f.logger.Info("Middleware created successfully")
	return middlewareManager
}

// CreateHealthServer создает сервер health check
func (f *ComponentFactory) CreateHealthServer(db *storage.DB, m *metrics.Metrics) *health.Server {
	if !f.config.HealthCheckEnabled {
		f.logger.Info("Health check server is disabled")
		return nil
	}

	server := health.NewServer(f.config.HealthPort, f.logger, db, m)
	f.logger.Info("Health check server created", zap.String("port", f.config.HealthPort))
	return server
}

// CreateServer создает HTTP сервер со всеми зависимостями
func (f *ComponentFactory) CreateServer() (*Server, error) {
	if err := f.CreateAppDataDirectory(); err != nil {
		return nil, err
	}

	verifier, err := f.CreateVerifier()
	if err != nil {
		return nil, err
	}

	db, err := f.CreateDatabase()
	if err != nil {
		return nil, err
	}

	services, err := f.CreateServices(db, verifier, f.CreateNotifier())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create services: %w", err)
	}

	m := metrics.NewMetrics(f.logger)
	middlewareManager := f.CreateMiddleware(m)

	router, err := NewRouter(handlers.New(services, m, f.logger), middlewareManager, f.config, f.logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	server := NewServer(f.config, f.logger, router)
	server.db = db
	server.health = f.CreateHealthServer(db, m)
	server.middleware = middlewareManager

	f.logger.Info("Server created successfully with all dependencies")
	return server, nil
}
