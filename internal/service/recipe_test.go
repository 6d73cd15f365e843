package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runmacros/backend/internal/models"
)

func oatmealRecipe() *models.Recipe {
	return &models.Recipe{
		Title: "Overnight Oats",
		Ingredients: models.IngredientList{
			{Name: "Oats", Calories: 380, Protein: 13, Carbs: 68, Fat: 7},
			{Name: "Milk", Calories: 120, Protein: 8, Carbs: 12, Fat: 5},
		},
		Instructions: models.JSONBStringArray{"Mix", "Refrigerate overnight"},
	}
}

func TestCreateFillsTotalsFromIngredients(t *testing.T) {
	svc := NewRecipeService(setupTestDB(t))
	userID := uuid.New()

	recipe := oatmealRecipe()
	require.NoError(t, svc.Create(userID, recipe))

	loaded, err := svc.Get(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, loaded.Calories)
	assert.Equal(t, 21.0, loaded.Protein)
	assert.Equal(t, userID, loaded.UserID)
}

func TestCreateKeepsExplicitTotals(t *testing.T) {
	svc := NewRecipeService(setupTestDB(t))

	recipe := oatmealRecipe()
	recipe.Calories = 450
	require.NoError(t, svc.Create(uuid.New(), recipe))

	loaded, err := svc.Get(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 450.0, loaded.Calories)
	// The other fields stay zero in the row; reads resolve them through
	// Totals.
	assert.Equal(t, 0.0, loaded.Protein)
	assert.Equal(t, 21.0, loaded.Totals().Protein)
}

func TestListFiltersByTitleAndIngredient(t *testing.T) {
	svc := NewRecipeService(setupTestDB(t))
	userID := uuid.New()

	require.NoError(t, svc.Create(userID, oatmealRecipe()))
	require.NoError(t, svc.Create(userID, &models.Recipe{
		Title: "Chicken Salad",
		Ingredients: models.IngredientList{
			{Name: "Chicken breast", Calories: 250, Protein: 45, Carbs: 0, Fat: 6},
		},
	}))

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byTitle, err := svc.List("oats")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Overnight Oats", byTitle[0].Title)

	byIngredient, err := svc.List("chicken BREAST")
	require.NoError(t, err)
	require.Len(t, byIngredient, 1)
	assert.Equal(t, "Chicken Salad", byIngredient[0].Title)

	none, err := svc.List("pizza")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateRequiresOwner(t *testing.T) {
	svc := NewRecipeService(setupTestDB(t))
	owner := uuid.New()

	recipe := oatmealRecipe()
	require.NoError(t, svc.Create(owner, recipe))

	recipe.Title = "Oats v2"
	assert.Error(t, svc.Update(uuid.New(), recipe))
	require.NoError(t, svc.Update(owner, recipe))

	loaded, err := svc.Get(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oats v2", loaded.Title)
}

func TestDeleteRemovesRecipeAndComments(t *testing.T) {
	svc := NewRecipeService(setupTestDB(t))
	owner := uuid.New()

	recipe := oatmealRecipe()
	require.NoError(t, svc.Create(owner, recipe))
	_, err := svc.AddComment(owner, recipe.ID, "Owner", "So good")
	require.NoError(t, err)

	assert.Error(t, svc.Delete(uuid.New(), recipe.ID))
	require.NoError(t, svc.Delete(owner, recipe.ID))

	_, err = svc.Get(recipe.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	comments, err := svc.Comments(recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	owner := uuid.New()

	recipe := oatmealRecipe()
	require.NoError(t, svc.Create(owner, recipe))

	first, err := svc.AddComment(owner, recipe.ID, "A", "first")
	require.NoError(t, err)
	second, err := svc.AddComment(owner, recipe.ID, "B", "second")
	require.NoError(t, err)

	// Separate the timestamps so ordering is deterministic.
	require.NoError(t, db.Model(first).Update("created_at", time.Now().Add(-time.Minute)).Error)
	require.NoError(t, db.Model(second).Update("created_at", time.Now()).Error)

	comments, err := svc.Comments(recipe.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "first", comments[1].Text)
}

func TestAddCommentUnknownRecipe(t *testing.T) {
	svc := NewRecipeService(setupTestDB(t))

	_, err := svc.AddComment(uuid.New(), uuid.New(), "A", "text")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}
