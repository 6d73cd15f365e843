package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/runmacros/backend/internal/models"
	"github.com/runmacros/backend/internal/nutrition"
	"github.com/runmacros/backend/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.GetGoals)
		goals.PUT("", h.SetGoals)
		goals.POST("/calculate", h.Calculate)
	}
	settings := router.Group("/settings")
	{
		settings.GET("", h.GetSettings)
		settings.PUT("", h.SaveSettings)
	}
}

func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	goals, err := h.goalService.Get(userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load goals"})
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) SetGoals(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var targets nutrition.MacroSet
	if err := c.ShouldBindJSON(&targets); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.goalService.Set(userID.(uuid.UUID), targets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save goals"})
		return
	}

	c.JSON(http.StatusOK, targets)
}

// Calculate derives targets from the submitted profile, or from the user's
// saved settings when the body is empty. Nothing is persisted; the client
// reviews the numbers and saves them via PUT /goals.
func (h *GoalHandler) Calculate(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var profile nutrition.Profile
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&profile); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	var (
		goals nutrition.MacroSet
		err   error
	)
	if profile == (nutrition.Profile{}) {
		goals, err = h.goalService.CalculateFromSettings(userID.(uuid.UUID))
	} else {
		goals, err = h.goalService.CalculateFromProfile(profile)
	}
	if errors.Is(err, nutrition.ErrIncompleteProfile) || errors.Is(err, nutrition.ErrProfileOutOfRange) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to calculate goals"})
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) GetSettings(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	settings, err := h.goalService.Settings(userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *GoalHandler) SaveSettings(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var in models.UserSettings
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := nutrition.CheckRanges(in.Age, in.HeightCm, in.WeightKg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.goalService.SaveSettings(userID.(uuid.UUID), &in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}
