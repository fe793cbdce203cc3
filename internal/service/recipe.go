package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/cache"
	"github.com/pageza/recipe-share/backend/internal/logging"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/storage"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db    *gorm.DB
	blobs storage.BlobStore
	cache cache.RecipeCache
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance. blobs and
// recipeCache may be nil.
func NewRecipeService(db *gorm.DB, blobs storage.BlobStore, recipeCache cache.RecipeCache) *RecipeService {
	return &RecipeService{
		db:    db,
		blobs: blobs,
		cache: recipeCache,
	}
}

// withAggregate preloads the owner and the review subtree, oldest first.
func withAggregate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.seq ASC")
		}).
		Preload("Reviews.Author").
		Preload("Reviews.Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("replies.seq ASC")
		}).
		Preload("Reviews.Replies.Author")
}

// withSummary preloads what a listing needs: the owner and review ratings.
func withSummary(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "recipe_id", "rating")
		})
}

func loadAggregate(db *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := withAggregate(db).First(&recipe, "recipes.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("recipe")
		}
		return nil, ErrInternal("failed to load recipe", err)
	}
	return &recipe, nil
}

// findRecipe loads the recipe row alone.
func findRecipe(db *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("recipe")
		}
		return nil, ErrInternal("failed to load recipe", err)
	}
	return &recipe, nil
}

// bumpVersion increments the recipe version and returns the new value. On
// Postgres the UPDATE holds the row lock until the transaction ends, which
// serializes every mutation of one recipe.
func bumpVersion(tx *gorm.DB, recipeID uuid.UUID) (int64, error) {
	res := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(map[string]interface{}{
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return 0, ErrInternal("failed to update recipe", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound("recipe")
	}

	var version int64
	if err := tx.Model(&models.Recipe{}).Select("version").Where("id = ?", recipeID).Row().Scan(&version); err != nil {
		return 0, ErrInternal("failed to read recipe version", err)
	}
	return version, nil
}

func normalizeFields(fields types.RecipeFields) types.RecipeFields {
	fields.Title = strings.TrimSpace(fields.Title)
	fields.Instructions = strings.TrimSpace(fields.Instructions)
	fields.Category = strings.TrimSpace(fields.Category)
	if fields.Ingredients != nil {
		fields.Ingredients = trimAll(fields.Ingredients)
	}
	return fields
}

func (s *RecipeService) invalidate(ctx context.Context, ids ...uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate recipe cache")
	}
}

// CreateRecipe validates fields, stores the optional photo and inserts the
// recipe owned by ownerID.
func (s *RecipeService) CreateRecipe(ctx context.Context, ownerID uuid.UUID, fields types.RecipeFields, photo *storage.Upload) (*models.Recipe, error) {
	fields = normalizeFields(fields)
	if err := validateStruct(fields); err != nil {
		return nil, err
	}
	if _, err := findUser(s.db.WithContext(ctx), ownerID); err != nil {
		return nil, err
	}

	var obj storage.Object
	if photo != nil {
		var err error
		if obj, err = storePhoto(ctx, s.blobs, recipePhotoPrefix, photo); err != nil {
			return nil, err
		}
	}

	recipe := models.Recipe{
		Title:        fields.Title,
		Ingredients:  models.StringArray(fields.Ingredients),
		Instructions: fields.Instructions,
		Category:     models.Category(fields.Category),
		CookingTime:  fields.CookingTime,
		PhotoURL:     obj.URL,
		PhotoKey:     obj.Key,
		UserID:       ownerID,
	}
	if err := s.db.WithContext(ctx).Omit("Owner", "Reviews").Create(&recipe).Error; err != nil {
		discardPhoto(ctx, s.blobs, obj.Key)
		return nil, ErrInternal("failed to create recipe", err)
	}

	logging.Ctx(ctx).Info().Str("recipe_id", recipe.ID.String()).Str("user_id", ownerID.String()).Msg("recipe created")
	return loadAggregate(s.db.WithContext(ctx), recipe.ID)
}

// GetRecipe returns the full aggregate, from the cache when possible.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	if s.cache != nil {
		recipe, err := s.cache.Get(ctx, id)
		if err == nil {
			return recipe, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			logging.Ctx(ctx).Warn().Err(err).Msg("recipe cache read failed")
		}
	}

	recipe, err := loadAggregate(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, recipe); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("recipe cache write failed")
		}
	}
	return recipe, nil
}

// UpdateRecipe replaces the mutable fields. Only the owner may update; a new
// photo replaces the old one, which is deleted after commit.
func (s *RecipeService) UpdateRecipe(ctx context.Context, actorID, id uuid.UUID, fields types.RecipeFields, photo *storage.Upload) (*models.Recipe, error) {
	db := s.db.WithContext(ctx)
	existing, err := findRecipe(db, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != actorID {
		return nil, ErrNotOwner
	}

	fields = normalizeFields(fields)
	if err := validateStruct(fields); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":        fields.Title,
		"ingredients":  models.StringArray(fields.Ingredients),
		"instructions": fields.Instructions,
		"category":     models.Category(fields.Category),
		"cooking_time": fields.CookingTime,
	}

	var obj storage.Object
	if photo != nil {
		if obj, err = storePhoto(ctx, s.blobs, recipePhotoPrefix, photo); err != nil {
			return nil, err
		}
		updates["photo_url"] = obj.URL
		updates["photo_key"] = obj.Key
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if _, err := bumpVersion(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return ErrInternal("failed to update recipe", err)
		}
		return nil
	})
	if err != nil {
		discardPhoto(ctx, s.blobs, obj.Key)
		return nil, err
	}
	s.invalidate(ctx, id)

	if photo != nil && existing.PhotoKey != obj.Key {
		discardPhoto(ctx, s.blobs, existing.PhotoKey)
	}

	return loadAggregate(db, id)
}

// DeleteRecipe removes the recipe with its reviews, replies and favorites in
// one transaction. Only the owner may delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, actorID, id uuid.UUID) error {
	db := s.db.WithContext(ctx)
	existing, err := findRecipe(db, id)
	if err != nil {
		return err
	}
	if existing.UserID != actorID {
		return ErrNotOwner
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		reviewIDs := tx.Model(&models.Review{}).Select("id").Where("recipe_id = ?", id)
		if err := tx.Where("review_id IN (?)", reviewIDs).Delete(&models.Reply{}).Error; err != nil {
			return ErrInternal("failed to delete replies", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return ErrInternal("failed to delete reviews", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeFavorite{}).Error; err != nil {
			return ErrInternal("failed to delete favorites", err)
		}
		res := tx.Where("id = ?", id).Delete(&models.Recipe{})
		if res.Error != nil {
			return ErrInternal("failed to delete recipe", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound("recipe")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	discardPhoto(ctx, s.blobs, existing.PhotoKey)

	logging.Ctx(ctx).Info().Str("recipe_id", id.String()).Msg("recipe deleted")
	return nil
}

// ListRecipes returns recipes most recent first. Reviews are loaded only for
// their ratings.
func (s *RecipeService) ListRecipes(ctx context.Context, filter types.RecipeFilter) ([]*models.Recipe, error) {
	query := withSummary(s.db.WithContext(ctx).Model(&models.Recipe{}))

	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("recipes.category = ?", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(recipes.title) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(search))+"%")
	}
	if filter.OwnerID != nil {
		query = query.Where("recipes.user_id = ?", *filter.OwnerID)
	}

	var recipes []*models.Recipe
	if err := query.Order("recipes.created_at DESC").Order("recipes.id DESC").Find(&recipes).Error; err != nil {
		return nil, ErrInternal("failed to list recipes", err)
	}
	return recipes, nil
}

// ListUserRecipes returns the recipes owned by userID, most recent first.
func (s *RecipeService) ListUserRecipes(ctx context.Context, userID uuid.UUID) ([]*models.Recipe, error) {
	return s.ListRecipes(ctx, types.RecipeFilter{OwnerID: &userID})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
