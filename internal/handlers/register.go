package handlers

import (
	"fmt"

	"cafes/internal/form"
	"cafes/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Register регистрирует маршруты сервиса
func (h *Handlers) Register(r *gin.Engine, mw *middleware.Middleware) error {
	if err := form.Register(); err != nil {
		return fmt.Errorf("failed to register form validators: %w", err)
	}

	csrf := mw.CSRF()

	r.NoRoute(h.NotFound)

	// Страницы
	r.GET("/", h.Home)
	r.GET("/all", h.AllCafes)
	r.GET("/cafe/:id", h.ShowCafe)
	r.GET("/search/:loc", h.SearchCafes)
	r.GET("/add", csrf.Issue(), h.SuggestPage)
	r.POST("/add", mw.Limit(), csrf.Protect(), h.AddCafe)
	r.GET("/contact", csrf.Issue(), h.ContactPage)
	r.POST("/contact", mw.Limit(), csrf.Protect(), h.SendContact)

	// JSON API
	r.GET("/random", h.RandomCafe)
	r.PATCH("/update-price/:id", mw.Limit(), h.UpdatePrice)
	r.DELETE("/report-closed/:id", mw.Limit(), h.ReportClosed)

	return nil
}
