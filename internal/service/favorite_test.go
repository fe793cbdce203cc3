package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/testhelpers"
)

func TestFavoritesAreIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testhelpers.CreateTestUser(t, e.db, "alice")
	bob := testhelpers.CreateTestUser(t, e.db, "bob")
	recipe := testhelpers.CreateTestRecipe(t, e.db, alice.ID, "Soup")

	require.NoError(t, e.favorites.AddFavorite(ctx, bob.ID, recipe.ID))
	require.NoError(t, e.favorites.AddFavorite(ctx, bob.ID, recipe.ID))

	var count int64
	require.NoError(t, e.db.Model(&models.RecipeFavorite{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	ok, err := e.favorites.IsFavorited(ctx, bob.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.favorites.IsFavorited(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	favs, err := e.favorites.ListFavorites(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, recipe.ID, favs[0].ID)
	assert.Equal(t, "alice", favs[0].Owner.Username)

	require.NoError(t, e.favorites.RemoveFavorite(ctx, bob.ID, recipe.ID))
	require.NoError(t, e.favorites.RemoveFavorite(ctx, bob.ID, recipe.ID))

	ok, err = e.favorites.IsFavorited(ctx, bob.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFavoritesMissingRecipe(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	bob := testhelpers.CreateTestUser(t, e.db, "bob")

	assert.Equal(t, KindNotFound, KindOf(e.favorites.AddFavorite(ctx, bob.ID, uuid.New())))
	assert.Equal(t, KindNotFound, KindOf(e.favorites.RemoveFavorite(ctx, bob.ID, uuid.New())))
}

func TestFavoriteUnknownUser(t *testing.T) {
	e := newEnv(t)
	alice := testhelpers.CreateTestUser(t, e.db, "alice")
	recipe := testhelpers.CreateTestRecipe(t, e.db, alice.ID, "Soup")

	err := e.favorites.AddFavorite(context.Background(), uuid.New(), recipe.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "user not found", MessageOf(err))

	var count int64
	require.NoError(t, e.db.Model(&models.RecipeFavorite{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListFavoritesFullDocuments(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testhelpers.CreateTestUser(t, e.db, "alice")
	bob := testhelpers.CreateTestUser(t, e.db, "bob")
	soup := testhelpers.CreateTestRecipe(t, e.db, alice.ID, "Soup")
	stew := testhelpers.CreateTestRecipe(t, e.db, alice.ID, "Stew")

	withReview, err := e.reviews.AddReview(ctx, bob.ID, soup.ID, 9, "great")
	require.NoError(t, err)
	_, err = e.reviews.AddReply(ctx, alice.ID, soup.ID, withReview.Reviews[0].ID, "thanks")
	require.NoError(t, err)

	require.NoError(t, e.favorites.AddFavorite(ctx, bob.ID, soup.ID))
	require.NoError(t, e.favorites.AddFavorite(ctx, bob.ID, stew.ID))

	favs, err := e.favorites.ListFavorites(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, favs, 2)

	var found *models.Recipe
	for _, f := range favs {
		if f.ID == soup.ID {
			found = f
		}
	}
	require.NotNil(t, found)
	require.Len(t, found.Reviews, 1)
	assert.Equal(t, "bob", found.Reviews[0].Author.Username)
	require.Len(t, found.Reviews[0].Replies, 1)
	assert.Equal(t, "alice", found.Reviews[0].Replies[0].Author.Username)

	set, err := e.favorites.FavoritedSet(ctx, bob.ID, []uuid.UUID{soup.ID, stew.ID, uuid.New()})
	require.NoError(t, err)
	assert.True(t, set[soup.ID])
	assert.True(t, set[stew.ID])
	assert.Len(t, set, 2)

	empty, err := e.favorites.FavoritedSet(ctx, alice.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
