// Package middleware содержит HTTP middleware компоненты.
package middleware

import (
	"net/http"

	"cafes/internal/config"
	"cafes/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Middleware представляет набор middleware сервиса
type Middleware struct {
	rateLimiter RateLimiterInterface
	csrf        *CSRF
	metrics     metrics.Interface
	logger      *zap.Logger
	config      *config.Config
}

// New создает новый middleware
func New(config *config.Config, metrics metrics.Interface, logger *zap.Logger) *Middleware {
	var rateLimiter RateLimiterInterface
	if config.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(config.RateLimit.Requests, config.RateLimit.Window, logger)
	}

	return &Middleware{
		rateLimiter: rateLimiter,
		csrf:        NewCSRF(config.SecretKey, config.CSRFEnabled, logger),
		metrics:     metrics,
		logger:      logger,
		config:      config,
	}
}

// Global возвращает цепочку middleware для всех маршрутов
func (m *Middleware) Global() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		RequestID(),
		Logging(m.logger, m.metrics),
		Recovery(m.logger),
	}
}

// Limit возвращает ограничитель частоты для изменяющих маршрутов
func (m *Middleware) Limit() gin.HandlerFunc {
	if m.rateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return RateLimit(m.rateLimiter)
}

// CSRF возвращает защиту форм
func (m *Middleware) CSRF() *CSRF {
	return m.csrf
}

// Cleanup очищает устаревшие записи в middleware
func (m *Middleware) Cleanup() {
	if m.rateLimiter != nil {
		m.rateLimiter.Cleanup()
	}
}

// abortWithError прерывает обработку с JSON ошибкой
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{
		"error": gin.H{http.StatusText(code): message},
	})
}
