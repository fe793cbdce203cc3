package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/storage"
	"github.com/pageza/recipe-share/backend/internal/types"
)

var (
	_ service.IRecipeService   = (*MockRecipeService)(nil)
	_ service.IReviewService   = (*MockReviewService)(nil)
	_ service.IFavoriteService = (*MockFavoriteService)(nil)
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func recipeResult(args mock.Arguments) (*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func recipesResult(args mock.Arguments) ([]*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, ownerID uuid.UUID, fields types.RecipeFields, photo *storage.Upload) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, ownerID, fields, photo))
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, id))
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, actorID, id uuid.UUID, fields types.RecipeFields, photo *storage.Upload) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, actorID, id, fields, photo))
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, actorID, id uuid.UUID) error {
	return m.Called(ctx, actorID, id).Error(0)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, filter types.RecipeFilter) ([]*models.Recipe, error) {
	return recipesResult(m.Called(ctx, filter))
}

func (m *MockRecipeService) ListUserRecipes(ctx context.Context, userID uuid.UUID) ([]*models.Recipe, error) {
	return recipesResult(m.Called(ctx, userID))
}

// MockReviewService is a mock implementation of the review service
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) AddReview(ctx context.Context, actorID, recipeID uuid.UUID, rating int, description string) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, actorID, recipeID, rating, description))
}

func (m *MockReviewService) AddReply(ctx context.Context, actorID, recipeID, reviewID uuid.UUID, description string) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, actorID, recipeID, reviewID, description))
}

// MockFavoriteService is a mock implementation of the favorites service
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockFavoriteService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockFavoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*models.Recipe, error) {
	return recipesResult(m.Called(ctx, userID))
}

func (m *MockFavoriteService) IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) FavoritedSet(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, userID, recipeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}
