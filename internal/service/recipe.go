package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/runmacros/backend/internal/models"
)

const recipeListLimit = 25

var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeService manages user recipes and their comments.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// List returns the newest recipes, optionally filtered by a case-insensitive
// substring of the title or any ingredient name. Ingredients live in JSONB,
// so the ingredient match runs in Go after the fetch.
func (s *RecipeService) List(query string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	matched := make([]models.Recipe, 0, recipeListLimit)
	for _, r := range recipes {
		if query != "" && !recipeMatches(&r, query) {
			continue
		}
		matched = append(matched, r)
		if len(matched) == recipeListLimit {
			break
		}
	}
	return matched, nil
}

func recipeMatches(r *models.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), query) {
			return true
		}
	}
	return false
}

// Get loads one recipe by id.
func (s *RecipeService) Get(id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}

// Create stores a new recipe. When no macro field was set explicitly the
// stored values are filled from the ingredient sums, so plain reads stay
// cheap.
func (s *RecipeService) Create(userID uuid.UUID, recipe *models.Recipe) error {
	recipe.UserID = userID
	if recipe.Calories == 0 && recipe.Protein == 0 && recipe.Carbs == 0 && recipe.Fat == 0 {
		totals := recipe.IngredientTotals()
		recipe.Calories = totals.Calories
		recipe.Protein = totals.Protein
		recipe.Carbs = totals.Carbs
		recipe.Fat = totals.Fat
	}
	if err := s.db.Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update overwrites an existing recipe. Only the owner may update.
func (s *RecipeService) Update(userID uuid.UUID, recipe *models.Recipe) error {
	existing, err := s.Get(recipe.ID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return errors.New("not the recipe owner")
	}

	existing.Title = recipe.Title
	existing.Description = recipe.Description
	existing.Ingredients = recipe.Ingredients
	existing.Instructions = recipe.Instructions
	existing.Calories = recipe.Calories
	existing.Protein = recipe.Protein
	existing.Carbs = recipe.Carbs
	existing.Fat = recipe.Fat
	if recipe.ImageURL != "" {
		existing.ImageURL = recipe.ImageURL
	}

	if err := s.db.Save(existing).Error; err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	*recipe = *existing
	return nil
}

// Delete removes a recipe and its comments. Only the owner may delete.
func (s *RecipeService) Delete(userID, id uuid.UUID) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return errors.New("not the recipe owner")
	}

	if err := s.db.Where("recipe_id = ?", id).Delete(&models.RecipeComment{}).Error; err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	if err := s.db.Delete(existing).Error; err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

// SetImage records the uploaded image location and object key on the recipe.
func (s *RecipeService) SetImage(userID, id uuid.UUID, url, key string) (*models.Recipe, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, errors.New("not the recipe owner")
	}

	existing.ImageURL = url
	existing.ImageKey = key
	if err := s.db.Save(existing).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return existing, nil
}

// Comments returns a recipe's comments, newest first.
func (s *RecipeService) Comments(recipeID uuid.UUID) ([]models.RecipeComment, error) {
	var comments []models.RecipeComment
	err := s.db.Where("recipe_id = ?", recipeID).Order("created_at DESC").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AddComment appends a comment to a recipe.
func (s *RecipeService) AddComment(userID, recipeID uuid.UUID, author, text string) (*models.RecipeComment, error) {
	if _, err := s.Get(recipeID); err != nil {
		return nil, err
	}

	comment := models.RecipeComment{
		RecipeID: recipeID,
		UserID:   userID,
		Author:   author,
		Text:     text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}
