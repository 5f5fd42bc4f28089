package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiterInterface определяет интерфейс для ограничителя запросов
type RateLimiterInterface interface {
	// Allow проверяет, разрешен ли запрос клиента
	Allow(clientID string) bool
	// Cleanup очищает устаревшие записи
	Cleanup()
}

// RateLimiter ограничивает количество запросов в скользящем окне
type RateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
	limit    int
	window   time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

var _ RateLimiterInterface = (*RateLimiter)(nil)

// NewRateLimiter создает новый rate limiter
func NewRateLimiter(limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
		logger:   logger,
	}
}

// Allow проверяет, разрешен ли запрос
func (rl *RateLimiter) Allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	validRequests := rl.recent(rl.requests[clientID], now.Add(-rl.window))

	if len(validRequests) >= rl.limit {
		rl.requests[clientID] = validRequests
		rl.logger.Warn("Rate limit exceeded",
			zap.String("client", clientID),
			zap.Int("requests", len(validRequests)),
			zap.Int("limit", rl.limit))
		return false
	}

	rl.requests[clientID] = append(validRequests, now)
	return true
}

// Cleanup очищает старые записи
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	windowStart := rl.now().Add(-rl.window)
	for clientID, requests := range rl.requests {
		validRequests := rl.recent(requests, windowStart)
		if len(validRequests) == 0 {
			delete(rl.requests, clientID)
		} else {
			rl.requests[clientID] = validRequests
		}
	}
}

// recent оставляет запросы, попавшие в окно
func (rl *RateLimiter) recent(requests []time.Time, windowStart time.Time) []time.Time {
	var validRequests []time.Time
	for _, reqTime := range requests {
		if reqTime.After(windowStart) {
			validRequests = append(validRequests, reqTime)
		}
	}
	return validRequests
}

// RateLimit ограничивает частоту запросов по IP клиента
func RateLimit(limiter RateLimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			abortWithError(c, http.StatusTooManyRequests, "Slow down, you are sending too many requests.")
			return
		}
		c.Next()
	}
}
