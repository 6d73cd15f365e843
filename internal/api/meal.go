package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/runmacros/backend/internal/nutrition"
	"github.com/runmacros/backend/internal/service"
)

// AddMealRequest carries the picked food's unscaled macros plus the portion
// input. Macro fields and the portion tolerate string values with comma
// decimals; scaling happens here, so clients never submit pre-multiplied
// values.
type AddMealRequest struct {
	Date     string           `json:"date" binding:"required"`
	Category string           `json:"category"`
	Name     string           `json:"name"`
	Portion  string           `json:"portion"`
	Calories nutrition.Number `json:"calories"`
	Protein  nutrition.Number `json:"protein"`
	Carbs    nutrition.Number `json:"carbs"`
	Fat      nutrition.Number `json:"fat"`
}

type MealHandler struct {
	mealService *service.MealService
}

func NewMealHandler(mealService *service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/meals", h.AddMeal)
	days := router.Group("/days")
	{
		days.GET("/:date", h.GetDay)
		days.GET("/:date/summary", h.GetSummary)
		days.DELETE("/:date/meals/:category/:entryID", h.RemoveMeal)
	}
}

func (h *MealHandler) AddMeal(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AddMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !validDate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	name := req.Name
	if name == "" {
		name = "Meal"
	}
	portion := nutrition.ParsePortion(req.Portion)
	base := nutrition.MacroSet{
		Calories: float64(req.Calories),
		Protein:  float64(req.Protein),
		Carbs:    float64(req.Carbs),
		Fat:      float64(req.Fat),
	}
	scaled := base.Scale(portion)

	entry := nutrition.FoodEntry{
		Name:     name,
		Portion:  nutrition.Number(portion),
		Calories: nutrition.Number(scaled.Calories),
		Protein:  nutrition.Number(scaled.Protein),
		Carbs:    nutrition.Number(scaled.Carbs),
		Fat:      nutrition.Number(scaled.Fat),
	}

	day, err := h.mealService.AddEntry(userID.(uuid.UUID), req.Date, req.Category, entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add meal"})
		return
	}

	c.JSON(http.StatusCreated, day)
}

func (h *MealHandler) RemoveMeal(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	day, err := h.mealService.RemoveEntry(userID.(uuid.UUID),
		c.Param("date"), c.Param("category"), c.Param("entryID"))
	if err == service.ErrEntryNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove meal"})
		return
	}

	c.JSON(http.StatusOK, day)
}

func (h *MealHandler) GetDay(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date := c.Param("date")
	if !validDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	day, err := h.mealService.Day(userID.(uuid.UUID), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load day"})
		return
	}
	if day == nil {
		c.JSON(http.StatusOK, gin.H{"date": date, "categories": gin.H{}, "totals": nutrition.MacroSet{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       day.Date,
		"categories": day.Categories,
		"totals":     day.Totals(),
	})
}

func (h *MealHandler) GetSummary(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date := c.Param("date")
	if !validDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	summary, err := h.mealService.Summary(userID.(uuid.UUID), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// validDate accepts only canonical YYYY-MM-DD. Unpadded variants like
// 2026-8-28 parse but would key a different day, so they are rejected.
func validDate(date string) bool {
	parsed, err := time.Parse("2006-01-02", date)
	return err == nil && parsed.Format("2006-01-02") == date
}
