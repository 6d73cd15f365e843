package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/runmacros/backend/internal/nutrition"
)

// Goal is a user's daily calorie and macro targets. One row per user.
type Goal struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Macros returns the targets as a MacroSet.
func (g Goal) Macros() nutrition.MacroSet {
	return nutrition.MacroSet{
		Calories: g.Calories,
		Protein:  g.Protein,
		Carbs:    g.Carbs,
		Fat:      g.Fat,
	}
}

// SetMacros overwrites the targets from a MacroSet.
func (g *Goal) SetMacros(m nutrition.MacroSet) {
	g.Calories = m.Calories
	g.Protein = m.Protein
	g.Carbs = m.Carbs
	g.Fat = m.Fat
}

// DefaultGoals are the targets used before a user has saved or calculated
// their own.
func DefaultGoals() nutrition.MacroSet {
	return nutrition.MacroSet{Calories: 2000, Protein: 150, Carbs: 250, Fat: 65}
}
