package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/runmacros/backend/internal/service"
)

// FoodSearcher queries the external food database.
type FoodSearcher interface {
	Search(ctx context.Context, query string) ([]service.FoodResult, error)
}

type FoodHandler struct {
	search FoodSearcher
}

func NewFoodHandler(search FoodSearcher) *FoodHandler {
	return &FoodHandler{search: search}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/foods/search", h.Search)
}

func (h *FoodHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	results, err := h.search.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "food search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
