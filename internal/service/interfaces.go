package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/storage"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (*types.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*types.AuthResponse, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(userID uuid.UUID, username string) (string, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfilePhoto(ctx context.Context, userID uuid.UUID, photo *storage.Upload) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, ownerID uuid.UUID, fields types.RecipeFields, photo *storage.Upload) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, actorID, id uuid.UUID, fields types.RecipeFields, photo *storage.Upload) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, actorID, id uuid.UUID) error
	ListRecipes(ctx context.Context, filter types.RecipeFilter) ([]*models.Recipe, error)
	ListUserRecipes(ctx context.Context, userID uuid.UUID) ([]*models.Recipe, error)
}

// IReviewService defines the interface for reviews and replies
type IReviewService interface {
	AddReview(ctx context.Context, actorID, recipeID uuid.UUID, rating int, description string) (*models.Recipe, error)
	AddReply(ctx context.Context, actorID, recipeID, reviewID uuid.UUID, description string) (*models.Recipe, error)
}

// IFavoriteService defines the interface for the favorites relation
type IFavoriteService interface {
	AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*models.Recipe, error)
	IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	FavoritedSet(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}
