package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/runmacros/backend/internal/nutrition"
)

// Ingredient is one recipe ingredient with its own macro contribution.
type Ingredient struct {
	Name     string           `json:"name"`
	Amount   string           `json:"amount,omitempty"`
	Calories nutrition.Number `json:"calories"`
	Protein  nutrition.Number `json:"protein"`
	Carbs    nutrition.Number `json:"carbs"`
	Fat      nutrition.Number `json:"fat"`
}

// Macros returns the ingredient's macro fields as a MacroSet.
func (i Ingredient) Macros() nutrition.MacroSet {
	return nutrition.MacroSet{
		Calories: float64(i.Calories),
		Protein:  float64(i.Protein),
		Carbs:    float64(i.Carbs),
		Fat:      float64(i.Fat),
	}
}

type Recipe struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title        string           `gorm:"size:255;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	ImageURL     string           `gorm:"size:255" json:"image_url"`
	ImageKey     string           `gorm:"size:255" json:"-"`
	Ingredients  IngredientList   `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`

	Calories float64 `gorm:"type:float" json:"calories"`
	Protein  float64 `gorm:"type:float" json:"protein"`
	Carbs    float64 `gorm:"type:float" json:"carbs"`
	Fat      float64 `gorm:"type:float" json:"fat"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IngredientTotals sums the macro contributions of all ingredients.
func (r *Recipe) IngredientTotals() nutrition.MacroSet {
	var total nutrition.MacroSet
	for _, ing := range r.Ingredients {
		total = total.Add(ing.Macros())
	}
	return total
}

// Totals returns the recipe's effective macros. Explicitly stored values win
// field by field; a zero field falls back to the sum over ingredients, so a
// recipe can override just its calories and still inherit the rest.
func (r *Recipe) Totals() nutrition.MacroSet {
	fromIngredients := r.IngredientTotals()
	total := nutrition.MacroSet{
		Calories: r.Calories,
		Protein:  r.Protein,
		Carbs:    r.Carbs,
		Fat:      r.Fat,
	}
	if total.Calories == 0 {
		total.Calories = fromIngredients.Calories
	}
	if total.Protein == 0 {
		total.Protein = fromIngredients.Protein
	}
	if total.Carbs == 0 {
		total.Carbs = fromIngredients.Carbs
	}
	if total.Fat == 0 {
		total.Fat = fromIngredients.Fat
	}
	return total
}

// RecipeComment is a user comment on a recipe. Listings order newest first.
type RecipeComment struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID  uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Author string `gorm:"size:100" json:"author"`
	Text   string `gorm:"type:text;not null" json:"text"`
}

func (c *RecipeComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
