package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/cache"
	"github.com/pageza/recipe-share/backend/internal/logging"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// ReviewService appends reviews and replies to recipes.
//
// Every append runs in one transaction that first bumps the recipe version.
// Concurrent appends to the same recipe queue on that row, so none is lost,
// and the bumped version doubles as the child's sequence number.
type ReviewService struct {
	db    *gorm.DB
	cache cache.RecipeCache
}

var _ IReviewService = (*ReviewService)(nil)

func NewReviewService(db *gorm.DB, recipeCache cache.RecipeCache) *ReviewService {
	return &ReviewService{db: db, cache: recipeCache}
}

// AddReview appends a review by actorID. Users may review a recipe more than
// once.
func (s *ReviewService) AddReview(ctx context.Context, actorID, recipeID uuid.UUID, rating int, description string) (*models.Recipe, error) {
	db := s.db.WithContext(ctx)
	if _, err := findRecipe(db, recipeID); err != nil {
		return nil, err
	}

	req := types.ReviewRequest{Rating: rating, Description: strings.TrimSpace(description)}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, actorID); err != nil {
			return err
		}
		seq, err := bumpVersion(tx, recipeID)
		if err != nil {
			return err
		}
		review := models.Review{
			RecipeID:    recipeID,
			UserID:      actorID,
			Rating:      req.Rating,
			Description: req.Description,
			Seq:         seq,
		}
		if err := tx.Omit("Author", "Replies").Create(&review).Error; err != nil {
			return ErrInternal("failed to add review", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.refreshed(ctx, recipeID)
}

// AddReply appends a reply to reviewID, which must belong to recipeID.
func (s *ReviewService) AddReply(ctx context.Context, actorID, recipeID, reviewID uuid.UUID, description string) (*models.Recipe, error) {
	db := s.db.WithContext(ctx)
	if _, err := findRecipe(db, recipeID); err != nil {
		return nil, err
	}
	var review models.Review
	if err := db.Select("id").First(&review, "id = ? AND recipe_id = ?", reviewID, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("review")
		}
		return nil, ErrInternal("failed to load review", err)
	}

	req := types.ReplyRequest{Description: strings.TrimSpace(description)}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, actorID); err != nil {
			return err
		}
		seq, err := bumpVersion(tx, recipeID)
		if err != nil {
			return err
		}
		reply := models.Reply{
			ReviewID:    reviewID,
			UserID:      actorID,
			Description: req.Description,
			Seq:         seq,
		}
		if err := tx.Omit("Author").Create(&reply).Error; err != nil {
			return ErrInternal("failed to add reply", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.refreshed(ctx, recipeID)
}

// refreshed drops the cached aggregate and reloads it from the database.
func (s *ReviewService) refreshed(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, recipeID); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate recipe cache")
		}
	}
	return loadAggregate(s.db.WithContext(ctx), recipeID)
}
