package handlers

import (
	"errors"
	"net/http"

	"cafes/internal/form"
	"cafes/internal/middleware"
	"cafes/internal/model"
	"cafes/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// modelFields сопоставляет поля модели с полями формы
var modelFields = map[string]string{
	"location": "loc",
}

// SuggestPage отображает форму добавления кафе
func (h *Handlers) SuggestPage(c *gin.Context) {
	h.renderSuggest(c, http.StatusOK, &form.AddCafeForm{}, form.FieldErrors{})
}

// AddCafe создает кафе из данных формы
func (h *Handlers) AddCafe(c *gin.Context) {
	var f form.AddCafeForm
	if err := form.Bind(c, &f); err != nil {
		var fields form.FieldErrors
		if errors.As(err, &fields) {
			h.renderSuggest(c, http.StatusOK, &f, fields)
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cafe := f.Cafe()
	err := h.cafes.Add(c.Request.Context(), cafe)

	var verrs model.ValidationErrors
	switch {
	case err == nil:
		h.metrics.RecordCafeAdded()
		successResponse(c, msgCafeAdded)
	case errors.Is(err, model.ErrDuplicateName):
		h.logger.Info("Rejected duplicate cafe", zap.String("name", cafe.Name))
		h.renderSuggest(c, http.StatusConflict, &f, form.FieldErrors{"name": msgDuplicateName})
	case errors.As(err, &verrs):
		fields := form.FieldErrors{}
		for field, message := range verrs.Fields() {
			if name, ok := modelFields[field]; ok {
				field = name
			}
			fields.Add(field, message)
		}
		h.renderSuggest(c, http.StatusOK, &f, fields)
	default:
		h.internalError(c, err, "add cafe")
	}
}

// RandomCafe возвращает случайное кафе
func (h *Handlers) RandomCafe(c *gin.Context) {
	cafe, err := h.cafes.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, msgCatalogEmpty)
			return
		}
		h.internalError(c, err, "random cafe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cafe": cafe})
}

// UpdatePrice обновляет цену кофе
func (h *Handlers) UpdatePrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.NotFound(c)
		return
	}

	_, err := h.cafes.UpdatePrice(c.Request.Context(), id, c.Query("new_price"))

	var verrs model.ValidationErrors
	switch {
	case err == nil:
		h.metrics.RecordPriceUpdate()
		successResponse(c, msgPriceUpdated)
	case errors.Is(err, model.ErrNotFound):
		errorResponse(c, http.StatusNotFound, msgCafeNotFound)
	case errors.As(err, &verrs):
		errorResponse(c, http.StatusBadRequest, verrs[0].Message)
	default:
		h.internalError(c, err, "update price")
	}
}

// ReportClosed удаляет закрытое кафе
func (h *Handlers) ReportClosed(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.NotFound(c)
		return
	}

	err := h.cafes.ReportClosed(c.Request.Context(), id, c.Query("api-key"))
	switch {
	case err == nil:
		h.metrics.RecordCafeClosed()
		successResponse(c, msgCafeDeleted)
	case errors.Is(err, model.ErrForbidden):
		errorResponse(c, http.StatusForbidden, msgForbidden)
	case errors.Is(err, model.ErrNotFound):
		errorResponse(c, http.StatusNotFound, msgCafeNotFound)
	default:
		h.internalError(c, err, "report closed")
	}
}

func (h *Handlers) renderSuggest(c *gin.Context, code int, f *form.AddCafeForm, errs form.FieldErrors) {
	c.HTML(code, web.PageSuggest, gin.H{
		"Title":     "Suggest a Cafe",
		"CSRFToken": middleware.CSRFToken(c),
		"Form":      f,
		"Errors":    errs,
		"Choices":   form.YesNoChoices,
	})
}
