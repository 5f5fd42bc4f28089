package app

import (
	"fmt"
	"net/http"

	"cafes/internal/config"
	"cafes/internal/handlers"
	"cafes/internal/middleware"
	"cafes/web"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

// NewRouter создает HTTP маршрутизатор сервиса
func NewRouter(h *handlers.Handlers, mw *middleware.Middleware, config *config.Config, logger *zap.Logger) (http.Handler, error) {
	gin.SetMode(config.GinMode)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(mw.Global()...)

	if err := h.Register(router, mw); err != nil {
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	if !config.GzipEnabled {
		return router, nil
	}

	logger.Debug("Response compression enabled")
	return gzhttp.GzipHandler(router), nil
}
