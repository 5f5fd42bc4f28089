// Package handlers содержит HTTP обработчики сервиса кафе.
package handlers

import (
	"net/http"
	"strconv"

	"cafes/internal/metrics"
	"cafes/internal/middleware"
	"cafes/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Тексты ответов JSON API
const (
	msgCafeAdded        = "Successfully added the new cafe."
	msgPriceUpdated     = "Successfully updated the price."
	msgCafeDeleted      = "Successfully deleted the cafe from the database."
	msgNoCafeAtLocation = "Sorry, we don't have a cafe at that location."
	msgCafeNotFound     = "Sorry a cafe with that id was not found in the database."
	msgForbidden        = "Sorry, that's not allowed. Make sure you have the correct api_key."
	msgCatalogEmpty     = "Sorry, there are no cafes in the database yet."
	msgPageNotFound     = "The requested URL was not found on the server."
	msgInternalError    = "Something went wrong on our side."
	msgDuplicateName    = "A cafe with this name already exists."
	msgContactFailed    = "We could not deliver your message right now. Please try again later."
)

// Handlers содержит все HTTP обработчики
type Handlers struct {
	cafes   service.CafeServiceInterface
	contact service.ContactServiceInterface
	metrics metrics.Interface
	logger  *zap.Logger
}

// New создает новый экземпляр обработчиков
func New(services *service.Services, metrics metrics.Interface, logger *zap.Logger) *Handlers {
	return &Handlers{
		cafes:   services.Cafe,
		contact: services.Contact,
		metrics: metrics,
		logger:  logger,
	}
}

// NotFound отвечает на запросы к неизвестным маршрутам
func (h *Handlers) NotFound(c *gin.Context) {
	errorResponse(c, http.StatusNotFound, msgPageNotFound)
}

// internalError логирует ошибку и отвечает 500
func (h *Handlers) internalError(c *gin.Context, err error, op string) {
	h.logger.Error("Request failed",
		zap.String("op", op),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err))
	h.metrics.RecordError()
	errorResponse(c, http.StatusInternalServerError, msgInternalError)
}

// parseID разбирает неотрицательный целый идентификатор из пути
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 31)
	if err != nil {
		return 0, false
	}
	return int(id), true
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"error": gin.H{http.StatusText(code): message},
	})
}

func successResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"response": gin.H{"success": message},
	})
}
