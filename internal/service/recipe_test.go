package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/testhelpers"
	"github.com/pageza/recipe-share/backend/internal/types"
)

func TestCreateRecipe(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testhelpers.CreateTestUser(t, e.db, "alice")

	fields := soupFields()
	fields.Title = "  Soup  "
	fields.Ingredients = []string{" water ", "salt"}

	recipe, err := e.recipes.CreateRecipe(ctx, alice.ID, fields, nil)
	require.NoError(t, err)
	assert.Equal(t, "Soup", recipe.Title)
	assert.Equal(t, models.StringArray{"water", "salt"}, recipe.Ingredients)
	assert.Equal(t, models.CategoryDinner, recipe.Category)
	assert.Equal(t, alice.ID, recipe.UserID)
	assert.Equal(t, "alice", recipe.Owner.Username)
	assert.Empty(t, recipe.Reviews)
	assert.Empty(t, recipe.PhotoURL)

	got, err := e.recipes.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, got.ID)
}

func TestCreateRecipeValidation(t *testing.T) {
	e := newEnv(t)
	alice := testhelpers.CreateTestUser(t, e.db, "alice")

	tests := []struct {
		name    string
		mutate  func(f *types.RecipeFields)
		message string
	}{
		{"empty title", func(f *types.RecipeFields) { f.Title = "   " }, "title is required"},
		{"no ingredients", func(f *types.RecipeFields) { f.Ingredients = nil }, "ingredients is required"},
		{"empty ingredients", func(f *types.RecipeFields) { f.Ingredients = []string{} }, "ingredients must have at least 1 item(s)"},
		{"blank ingredient", func(f *types.RecipeFields) { f.Ingredients = []string{"water", "  "} }, "ingredients[1] is required"},
		{"empty instructions", func(f *types.RecipeFields) { f.Instructions = "" }, "instructions is required"},
		{"unknown category", func(f *types.RecipeFields) { f.Category = "Brunch" }, "category must be one of: Breakfast, Lunch, Dinner, Dessert, Snack"},
		{"lowercase category", func(f *types.RecipeFields) { f.Category = "breakfast" }, "category must be one of: Breakfast, Lunch, Dinner, Dessert, Snack"},
		{"negative cooking time", func(f *types.RecipeFields) { f.CookingTime = -1 }, "cookingTime must be 0 or greater"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := soupFields()
			tt.mutate(&fields)
			_, err := e.recipes.CreateRecipe(context.Background(), alice.ID, fields, nil)
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.Equal(t, tt.message, MessageOf(err))
		})
	}

	var count int64
	require.NoError(t, e.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRecipeUnknownOwner(t *testing.T) {
	e := newEnv(t)
	_, err := e.recipes.CreateRecipe(context.Background(), uuid.New(), soupFields(), nil)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateRecipeWithPhoto(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testhelpers.CreateTestUser(t, e.db, "alice")

	recipe, err := e.recipes.CreateRecipe(ctx, alice.ID, soupFields(), jpegUpload())
	require.NoError(t, err)
	assert.NotEmpty(t, recipe.PhotoURL)
	assert.True(t, e.blobs.has(recipe.PhotoKey))

	e.blobs.failPut = true
	_, err = e.recipes.CreateRecipe(ctx, alice.ID, soupFields(), jpegUpload())
	assert.Equal(t, KindInternal, KindOf(err))

	var count int64
	require.NoError(t, e.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "failed upload persists nothing")
}

func TestListRecipes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testhelpers.CreateTestUser(t, e.db, "alice")
	bob := testhelpers.CreateTestUser(t, e.db, "bob")

	create := func(owner uuid.UUID, title, category string) *models.Recipe {
		fields := soupFields()
		fields.Title = title
		fields.Category = category
		r, err := e.recipes.CreateRecipe(ctx, owner, fields, nil)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		return r
	}
	pancakes := create(alice.ID, "Pancakes", "Breakfast")
	soup := create(bob.ID, "Tomato Soup", "Dinner")
	pie := create(alice.ID, "Apple Pie 100%", "Dessert")

	_, err := e.reviews.AddReview(ctx, bob.ID, pancakes.ID, 8, "fluffy")
	require.NoError(t, err)
	_, err = e.reviews.AddReview(ctx, alice.ID, pancakes.ID, 5, "ok")
	require.NoError(t, err)

	all, err := e.recipes.ListRecipes(ctx, types.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{pie.ID, soup.ID, pancakes.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "bob", all[1].Owner.Username)
	assert.Len(t, all[2].Reviews, 2)
	assert.InDelta(t, 6.5, all[2].AverageRating(), 0.001)

	breakfast, err := e.recipes.ListRecipes(ctx, types.RecipeFilter{Category: "Breakfast"})
	require.NoError(t, err)
	require.Len(t, breakfast, 1)
	assert.Equal(t, pancakes.ID, breakfast[0].ID)

	search, err := e.recipes.ListRecipes(ctx, types.RecipeFilter{Search: "SOUP"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, soup.ID, search[0].ID)

	literal, err := e.recipes.ListRecipes(ctx, types.RecipeFilter{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, pie.ID, literal[0].ID)

	wildcard, err := e.recipes.ListRecipes(ctx, types.RecipeFilter{Search: "%"})
	require.NoError(t, err)
	assert.Len(t, wildcard, 1, "percent is matched literally")

	mine, err := e.recipes.ListUserRecipes(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, pie.ID, mine[0].ID)
	assert.Equal(t, pancakes.ID, mine[1].ID)

	none, err := e.recipes.ListRecipes(ctx, types.RecipeFilter{Category: "Snack"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetRecipeNotFound(t *testing.T) {
	e := newEnv(t)
	_, err := e.recipes.GetRecipe(context.Background(), uuid.New())
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "recipe not found", MessageOf(err))
}

func TestGetRecipeUsesCache(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testhelpers.CreateTestUser(t, e.db, "alice")
	recipe := testhelpers.CreateTestRecipe(t, e.db, alice.ID, "Soup")

	_, err := e.recipes.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.True(t, e.cache.cached(recipe.ID))

	cached, err := e.recipes.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", cached.Title)
	assert.Equal(t, 1, e.cache.hits)

	_, err = e.reviews.AddReview(ctx, alice.ID, recipe.ID, 9, "tasty")
	require.NoError(t, err)
	assert.False(t, e.cache.cached(recipe.ID), "appending a review invalidates the entry")

	fresh, err := e.recipes.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Len(t, fresh.Reviews, 1)
}

func TestUpdateRecipe(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testhelpers.CreateTestUser(t, e.db, "alice")
	bob := testhelpers.CreateTestUser(t, e.db, "bob")

	recipe, err := e.recipes.CreateRecipe(ctx, alice.ID, soupFields(), jpegUpload())
	require.NoError(t, err)
	oldKey := recipe.PhotoKey
	_, err = e.recipes.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)

	fields := soupFields()
	fields.Title = "Better Soup"
	fields.Category = "Lunch"

	_, err = e.recipes.UpdateRecipe(ctx, bob.ID, recipe.ID, fields, nil)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = e.recipes.UpdateRecipe(ctx, alice.ID, uuid.New(), fields, nil)
	assert.Equal(t, KindNotFound, KindOf(err))

	bad := fields
	bad.Title = ""
	_, err = e.recipes.UpdateRecipe(ctx, alice.ID, recipe.ID, bad, nil)
	assert.Equal(t, KindValidation, KindOf(err))

	updated, err := e.recipes.UpdateRecipe(ctx, alice.ID, recipe.ID, fields, nil)
	require.NoError(t, err)
	assert.Equal(t, "Better Soup", updated.Title)
	assert.Equal(t, models.CategoryLunch, updated.Category)
	assert.Equal(t, oldKey, updated.PhotoKey, "photo kept without a new upload")
	assert.Greater(t, updated.Version, recipe.Version)
	assert.False(t, e.cache.cached(recipe.ID))

	withPhoto, err := e.recipes.UpdateRecipe(ctx, alice.ID, recipe.ID, fields, jpegUpload())
	require.NoError(t, err)
	assert.NotEqual(t, oldKey, withPhoto.PhotoKey)
	assert.False(t, e.blobs.has(oldKey), "replaced photo is deleted")
	assert.True(t, e.blobs.has(withPhoto.PhotoKey))
}

func TestDeleteRecipe(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testhelpers.CreateTestUser(t, e.db, "alice")
	bob := testhelpers.CreateTestUser(t, e.db, "bob")

	recipe, err := e.recipes.CreateRecipe(ctx, alice.ID, soupFields(), jpegUpload())
	require.NoError(t, err)
	withReview, err := e.reviews.AddReview(ctx, bob.ID, recipe.ID, 7, "nice")
	require.NoError(t, err)
	_, err = e.reviews.AddReply(ctx, alice.ID, recipe.ID, withReview.Reviews[0].ID, "thanks")
	require.NoError(t, err)
	require.NoError(t, e.favorites.AddFavorite(ctx, bob.ID, recipe.ID))

	assert.ErrorIs(t, e.recipes.DeleteRecipe(ctx, bob.ID, recipe.ID), ErrNotOwner)

	require.NoError(t, e.recipes.DeleteRecipe(ctx, alice.ID, recipe.ID))

	_, err = e.recipes.GetRecipe(ctx, recipe.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.False(t, e.blobs.has(recipe.PhotoKey))

	for _, model := range []interface{}{&models.Review{}, &models.Reply{}, &models.RecipeFavorite{}} {
		var count int64
		require.NoError(t, e.db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T rows remain", model)
	}

	favs, err := e.favorites.ListFavorites(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, favs)

	assert.Equal(t, KindNotFound, KindOf(e.recipes.DeleteRecipe(ctx, alice.ID, recipe.ID)))
}
