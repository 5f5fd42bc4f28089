// Package metrics реализует систему метрик сервиса кафе.
package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Metrics представляет систему метрик сервиса
type Metrics struct {
	mu sync.RWMutex

	// Метрики каталога
	cafesAdded   int64
	cafesClosed  int64
	priceUpdates int64

	// Метрики производительности
	avgResponseTime time.Duration
	totalRequests   int64
	clientErrors    int64
	errorCount      int64

	started time.Time

	logger *zap.Logger
}

var _ Interface = (*Metrics)(nil)

// NewMetrics создает новую систему метрик
func NewMetrics(logger *zap.Logger) *Metrics {
	return &Metrics{
		started: time.Now(),
		logger:  logger,
	}
}

// RecordRequest записывает обработанный HTTP запрос
func (m *Metrics) RecordRequest(status int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRequests++
	switch {
	case status >= http.StatusInternalServerError:
		m.errorCount++
	case status >= http.StatusBadRequest:
		m.clientErrors++
	}

	// Простое скользящее среднее
	if m.avgResponseTime == 0 {
		m.avgResponseTime = duration
	} else {
		m.avgResponseTime = (m.avgResponseTime + duration) / 2
	}
}

// RecordCafeAdded записывает добавление кафе
func (m *Metrics) RecordCafeAdded() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cafesAdded++
}

// RecordCafeClosed записывает удаление закрытого кафе
func (m *Metrics) RecordCafeClosed() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cafesClosed++
}

// RecordPriceUpdate записывает обновление цены
func (m *Metrics) RecordPriceUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.priceUpdates++
}

// RecordError записывает ошибку
func (m *Metrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorCount++
}

// GetStats возвращает все метрики в виде map
func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"catalog": map[string]interface{}{
			"cafes_added":   m.cafesAdded,
			"cafes_closed":  m.cafesClosed,
			"price_updates": m.priceUpdates,
		},
		"performance": map[string]interface{}{
			"avg_response_time": m.formatDuration(m.avgResponseTime),
			"total_requests":    m.totalRequests,
			"client_errors":     m.clientErrors,
			"error_count":       m.errorCount,
			"error_rate":        m.calculateErrorRate(),
		},
		"system": map[string]interface{}{
			"uptime":     m.formatDuration(time.Since(m.started)),
			"started_at": m.started.Format(time.RFC3339),
		},
	}
}

// calculateErrorRate вычисляет процент ошибок
func (m *Metrics) calculateErrorRate() float64 {
	if m.totalRequests > 0 {
		return float64(m.errorCount) / float64(m.totalRequests) * 100
	}
	return 0
}

// formatDuration форматирует duration с двумя знаками после запятой
func (m *Metrics) formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
