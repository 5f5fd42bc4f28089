package handlers

import (
	"errors"
	"net/http"
	"strings"

	"cafes/internal/form"
	"cafes/internal/middleware"
	"cafes/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContactPage отображает форму обратной связи
func (h *Handlers) ContactPage(c *gin.Context) {
	h.renderContact(c, http.StatusOK, &form.ContactForm{}, form.FieldErrors{}, "")
}

// SendContact пересылает сообщение администратору
func (h *Handlers) SendContact(c *gin.Context) {
	var f form.ContactForm
	if err := form.Bind(c, &f); err != nil {
		var fields form.FieldErrors
		if errors.As(err, &fields) {
			h.renderContact(c, http.StatusOK, &f, fields, "")
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.contact.Submit(c.Request.Context(),
		strings.TrimSpace(f.Reason),
		strings.TrimSpace(f.Email),
		strings.TrimSpace(f.Body))
	if err != nil {
		h.logger.Error("Failed to send contact message",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
		h.metrics.RecordError()
		h.renderContact(c, http.StatusServiceUnavailable, &f, form.FieldErrors{}, msgContactFailed)
		return
	}

	c.HTML(http.StatusOK, web.PageContact, gin.H{
		"Title": "Contact",
		"Sent":  true,
	})
}

func (h *Handlers) renderContact(c *gin.Context, code int, f *form.ContactForm, errs form.FieldErrors, formError string) {
	c.HTML(code, web.PageContact, gin.H{
		"Title":     "Contact",
		"CSRFToken": middleware.CSRFToken(c),
		"Form":      f,
		"Errors":    errs,
		"FormError": formError,
	})
}
