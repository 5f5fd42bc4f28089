package handlers

import (
	"errors"
	"net/http"

	"cafes/internal/model"
	"cafes/web"

	"github.com/gin-gonic/gin"
)

// Home отображает главную страницу
func (h *Handlers) Home(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageIndex, gin.H{"Title": "Home"})
}

// AllCafes отображает все кафе, отсортированные по имени
func (h *Handlers) AllCafes(c *gin.Context) {
	cafes, err := h.cafes.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "list cafes")
		return
	}

	c.HTML(http.StatusOK, web.PageCafes, gin.H{
		"Title": "All Cafes",
		"Cafes": cafes,
	})
}

// ShowCafe отображает одно кафе
func (h *Handlers) ShowCafe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.NotFound(c)
		return
	}

	cafe, err := h.cafes.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, msgCafeNotFound)
			return
		}
		h.internalError(c, err, "get cafe")
		return
	}

	c.HTML(http.StatusOK, web.PageCafe, gin.H{
		"Title": cafe.Name,
		"Cafe":  cafe,
	})
}

// SearchCafes отображает кафе в локации
func (h *Handlers) SearchCafes(c *gin.Context) {
	location := c.Param("loc")

	cafes, err := h.cafes.Search(c.Request.Context(), location)
	if err != nil {
		h.internalError(c, err, "search cafes")
		return
	}

	if len(cafes) == 0 {
		errorResponse(c, http.StatusNotFound, msgNoCafeAtLocation)
		return
	}

	c.HTML(http.StatusOK, web.PageCafes, gin.H{
		"Title":    location,
		"Cafes":    cafes,
		"Location": location,
	})
}
