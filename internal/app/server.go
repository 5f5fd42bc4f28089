// Package app содержит основную логику приложения.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cafes/internal/config"
	"cafes/internal/health"
	"cafes/internal/middleware"
	"cafes/internal/storage"

	"go.uber.org/zap"
)

const cleanupInterval = 5 * time.Minute

// Server представляет HTTP сервер каталога кафе
type Server struct {
	config     *config.Config
	logger     *zap.Logger
	http       *http.Server
	db         *storage.DB
	health     *health.Server
	middleware *middleware.Middleware
	wg         sync.WaitGroup
}

// NewServer создает сервер для готового обработчика
func NewServer(cfg *config.Config, logger *zap.Logger, handler http.Handler) *Server {
	return &Server{
		config: cfg,
		logger: logger,
		http: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
	}
}

// NewServerWithFactory создает сервер со всеми зависимостями
func NewServerWithFactory(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	factory, err := NewComponentFactory(cfg, logger)
	if err != nil {
		return nil, err
	}
	return factory.CreateServer()
}

// Start запускает сервер и блокируется до отмены контекста
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting server", zap.String("addr", s.http.Addr))

	if s.db != nil {
		if err := s.db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Запускаем health check сервер
	if s.health != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.health.Start(); err != nil {
				s.logger.Error("Health check server failed", zap.Error(err))
			}
		}()
	}

	// Запускаем очистку middleware
	if s.middleware != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			ticker := time.NewTicker(cleanupInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					s.middleware.Cleanup()
				case <-ctx.Done():
					s.logger.Debug("Middleware cleanup stopped by context")
					return
				}
			}
		}()
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	s.logger.Info("Server started successfully")

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	cancel()
	if err := s.Stop(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Stop gracefully останавливает сервер
func (s *Server) Stop() error {
	s.logger.Info("Stopping server gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop http server: %w", err))
	}

	if s.health != nil {
		if err := s.health.Stop(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop health check server: %w", err))
		}
	}

	// Ждем завершения всех горутин с таймаутом
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-done:
		s.logger.Debug("All goroutines stopped successfully")
	case <-shutdownCtx.Done():
		s.logger.Warn("Graceful shutdown timeout exceeded, forcing stop")
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	s.logger.Info("Server stopped successfully")
	return nil
}
