package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-share/backend/internal/models"
)

// FavoriteService manages the (user, recipe) favorites relation.
type FavoriteService struct {
	db *gorm.DB
}

var _ IFavoriteService = (*FavoriteService)(nil)

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// AddFavorite is idempotent: adding an existing pair is a no-op.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	db := s.db.WithContext(ctx)
	if _, err := findRecipe(db, recipeID); err != nil {
		return err
	}

	favorite := models.RecipeFavorite{UserID: userID, RecipeID: recipeID}
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		if _, userErr := findUser(db, userID); userErr != nil {
			return userErr
		}
		// The recipe was deleted after the lookup.
		return ErrNotFound("recipe")
	}
	if err != nil {
		return ErrInternal("failed to add favorite", err)
	}
	return nil
}

// RemoveFavorite is idempotent for existing recipes; a missing recipe is
// NotFound.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	db := s.db.WithContext(ctx)
	if _, err := findRecipe(db, recipeID); err != nil {
		return err
	}

	if err := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.RecipeFavorite{}).Error; err != nil {
		return ErrInternal("failed to remove favorite", err)
	}
	return nil
}

// ListFavorites returns the full recipes userID has favorited, most recently
// favorited first.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	err := withAggregate(s.db.WithContext(ctx).Model(&models.Recipe{})).
		Select("recipes.*").
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Where("recipe_favorites.user_id = ?", userID).
		Order("recipe_favorites.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, ErrInternal("failed to list favorites", err)
	}
	return recipes, nil
}

func (s *FavoriteService) IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.RecipeFavorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, ErrInternal("failed to check favorite", err)
	}
	return count > 0, nil
}

// FavoritedSet reports which of recipeIDs userID has favorited. Absent ids
// map to false.
func (s *FavoriteService) FavoritedSet(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return set, nil
	}

	var favorited []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.RecipeFavorite{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &favorited).Error
	if err != nil {
		return nil, ErrInternal("failed to load favorites", err)
	}
	for _, id := range favorited {
		set[id] = true
	}
	return set, nil
}
