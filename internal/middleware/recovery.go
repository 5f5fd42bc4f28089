package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery обрабатывает панику в обработчиках
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if panicErr := recover(); panicErr != nil {
				logger.Error("Panic recovered",
					zap.String("request_id", GetRequestID(c)),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", panicErr),
					zap.String("stack", string(debug.Stack())))

				abortWithError(c, http.StatusInternalServerError, "Something went wrong on our side.")
			}
		}()
		c.Next()
	}
}
