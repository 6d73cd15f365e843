package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/runmacros/backend/internal/models"
	"github.com/runmacros/backend/internal/nutrition"
	"github.com/runmacros/backend/internal/service"
)

// ImageStore stores uploaded images and signs download URLs for them.
type ImageStore interface {
	UploadRecipeImage(ctx context.Context, imageData []byte, contentType string) (string, string, error)
	RecipeImageURL(ctx context.Context, key string) (string, error)
}

// RecipeResponse is a recipe with its effective macro totals resolved.
type RecipeResponse struct {
	models.Recipe
	Totals nutrition.MacroSet `json:"totals"`
}

func newRecipeResponse(r *models.Recipe) RecipeResponse {
	return RecipeResponse{Recipe: *r, Totals: r.Totals()}
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type RecipeHandler struct {
	recipeService *service.RecipeService
	images        ImageStore
}

// NewRecipeHandler creates the handler. The image store may be nil; image
// uploads then return 503.
func NewRecipeHandler(recipeService *service.RecipeService, images ImageStore) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, images: images}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.POST("", h.Create)
		recipes.GET("/:id", h.Get)
		recipes.PUT("/:id", h.Update)
		recipes.DELETE("/:id", h.Delete)
		recipes.GET("/:id/comments", h.Comments)
		recipes.POST("/:id/comments", h.AddComment)
		recipes.POST("/:id/image", h.UploadImage)
		recipes.GET("/:id/image", h.ImageLink)
	}
}

func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.recipeService.List(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}

	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, newRecipeResponse(&recipes[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.Get(id)
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipe"})
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(recipe))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if recipe.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	if err := h.recipeService.Create(userID.(uuid.UUID), &recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, newRecipeResponse(&recipe))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	recipe.ID = id

	err = h.recipeService.Update(userID.(uuid.UUID), &recipe)
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(&recipe))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	err = h.recipeService.Delete(userID.(uuid.UUID), id)
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

func (h *RecipeHandler) Comments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	comments, err := h.recipeService.Comments(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *RecipeHandler) AddComment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	author, _ := c.Get("name")
	authorName, _ := author.(string)

	comment, err := h.recipeService.AddComment(userID.(uuid.UUID), id, authorName, req.Text)
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	url, key, err := h.images.UploadRecipeImage(c.Request.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}

	recipe, err := h.recipeService.SetImage(userID.(uuid.UUID), id, url, key)
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(recipe))
}

// ImageLink answers with a short-lived signed download URL for the recipe's
// image. Recipes whose image predates key tracking, or servers without image
// storage, fall back to the stored public URL.
func (h *RecipeHandler) ImageLink(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.Get(id)
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipe"})
		return
	}

	if recipe.ImageKey == "" || h.images == nil {
		if recipe.ImageURL == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe has no image"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": recipe.ImageURL})
		return
	}

	url, err := h.images.RecipeImageURL(c.Request.Context(), recipe.ImageKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign image url"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
