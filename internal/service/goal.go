package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/runmacros/backend/internal/models"
	"github.com/runmacros/backend/internal/nutrition"
)

// GoalService manages daily targets and the profile settings they are
// derived from.
type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// Get returns the user's stored targets, or the defaults when none were
// saved yet.
func (s *GoalService) Get(userID uuid.UUID) (nutrition.MacroSet, error) {
	var goal models.Goal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultGoals(), nil
	}
	if err != nil {
		return nutrition.MacroSet{}, fmt.Errorf("failed to load goals: %w", err)
	}
	return goal.Macros(), nil
}

// Set stores the user's targets, replacing any previous row.
func (s *GoalService) Set(userID uuid.UUID, targets nutrition.MacroSet) error {
	var goal models.Goal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal = models.Goal{UserID: userID}
		goal.SetMacros(targets)
		return s.db.Create(&goal).Error
	}
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}

	goal.SetMacros(targets)
	return s.db.Save(&goal).Error
}

// Settings returns the user's saved settings, or a fresh row with defaults
// when none exist yet.
func (s *GoalService) Settings(userID uuid.UUID) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultSettings(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &settings, nil
}

// SaveSettings upserts the user's settings row.
func (s *GoalService) SaveSettings(userID uuid.UUID, in *models.UserSettings) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.UserSettings{UserID: userID}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	settings.Sex = in.Sex
	settings.Age = in.Age
	settings.HeightCm = in.HeightCm
	settings.WeightKg = in.WeightKg
	settings.ActivityLevel = in.ActivityLevel
	settings.GoalType = in.GoalType
	if in.MealCategories != nil {
		settings.MealCategories = in.MealCategories
	}
	if in.WaterGoalL > 0 {
		settings.WaterGoalL = in.WaterGoalL
	}
	if in.PortionStep > 0 {
		settings.PortionStep = in.PortionStep
	}
	if in.Theme != "" {
		settings.Theme = in.Theme
	}
	if in.Language != "" {
		settings.Language = in.Language
	}

	if err := s.db.Save(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return &settings, nil
}

// CalculateFromProfile computes targets from a profile without persisting
// anything. The caller decides whether to save the result.
func (s *GoalService) CalculateFromProfile(p nutrition.Profile) (nutrition.MacroSet, error) {
	return nutrition.CalculateGoals(p)
}

// CalculateFromSettings computes targets from the user's saved settings.
func (s *GoalService) CalculateFromSettings(userID uuid.UUID) (nutrition.MacroSet, error) {
	settings, err := s.Settings(userID)
	if err != nil {
		return nutrition.MacroSet{}, err
	}
	return nutrition.CalculateGoals(settings.Profile())
}

func defaultSettings(userID uuid.UUID) *models.UserSettings {
	return &models.UserSettings{
		UserID:         userID,
		ActivityLevel:  nutrition.ActivityModerate,
		GoalType:       nutrition.GoalMaintain,
		MealCategories: models.JSONBStringArray{"Breakfast", "Lunch", "Dinner", "Snacks"},
		WaterGoalL:     2.0,
		PortionStep:    0.5,
		Theme:          "system",
		Language:       "en",
	}
}
