package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/runmacros/backend/internal/nutrition"
)

// UserSettings holds the per-user profile attributes and UI preferences. One
// row per user; missing rows fall back to defaults in the service layer.
type UserSettings struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Sex           string  `gorm:"size:10" json:"sex"`
	Age           float64 `json:"age"`
	HeightCm      float64 `json:"height"`
	WeightKg      float64 `json:"weight"`
	ActivityLevel string  `gorm:"size:20" json:"activity"`
	GoalType      string  `gorm:"size:20" json:"goalType"`

	MealCategories JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"meal_categories"`
	WaterGoalL     float64          `json:"water_goal_l"`
	PortionStep    float64          `json:"portion_step"`
	Theme          string           `gorm:"size:20" json:"theme"`
	Language       string           `gorm:"size:10" json:"language"`
}

func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Profile maps the stored attributes to the goal calculator's input.
func (s *UserSettings) Profile() nutrition.Profile {
	return nutrition.Profile{
		Sex:      s.Sex,
		Age:      s.Age,
		HeightCm: s.HeightCm,
		WeightKg: s.WeightKg,
		Activity: s.ActivityLevel,
		GoalType: s.GoalType,
	}
}
