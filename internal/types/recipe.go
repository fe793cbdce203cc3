package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/internal/models"
)

// Author identifies the user behind a recipe, review or reply.
type Author struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
}

// Reply represents a reply in a recipe response
type Reply struct {
	ID          uuid.UUID `json:"_id"`
	User        Author    `json:"user"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Review represents a review with its replies, oldest first
type Review struct {
	ID          uuid.UUID `json:"_id"`
	User        Author    `json:"user"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Replies     []Reply   `json:"replies"`
}

// RecipeSummary is the listing shape of a recipe. It carries review
// statistics but not the reviews themselves.
type RecipeSummary struct {
	ID            uuid.UUID `json:"_id"`
	Title         string    `json:"title"`
	Ingredients   []string  `json:"ingredients"`
	Instructions  string    `json:"instructions"`
	Category      string    `json:"category"`
	CookingTime   int       `json:"cookingTime"`
	Photo         *Photo    `json:"photo,omitempty"`
	CreatedBy     Author    `json:"createdBy"`
	ReviewCount   int       `json:"reviewCount"`
	AverageRating float64   `json:"averageRating"`
	IsFavorited   *bool     `json:"isFavorited,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RecipeDetail is the full aggregate.
type RecipeDetail struct {
	RecipeSummary
	Reviews []Review `json:"reviews"`
}

// NewRecipeSummary builds the listing shape. Only review ratings need to be
// loaded on r.
func NewRecipeSummary(r *models.Recipe) RecipeSummary {
	ingredients := []string(r.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	summary := RecipeSummary{
		ID:            r.ID,
		Title:         r.Title,
		Ingredients:   ingredients,
		Instructions:  r.Instructions,
		Category:      string(r.Category),
		CookingTime:   r.CookingTime,
		CreatedBy:     Author{ID: r.UserID, Username: r.Owner.Username},
		ReviewCount:   len(r.Reviews),
		AverageRating: r.AverageRating(),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.PhotoURL != "" {
		summary.Photo = &Photo{URL: r.PhotoURL, PublicID: r.PhotoKey}
	}
	return summary
}

// NewRecipeDetail builds the full aggregate shape, reviews and replies
// in insertion order.
func NewRecipeDetail(r *models.Recipe) RecipeDetail {
	detail := RecipeDetail{
		RecipeSummary: NewRecipeSummary(r),
		Reviews:       make([]Review, 0, len(r.Reviews)),
	}
	for _, rv := range r.Reviews {
		review := Review{
			ID:          rv.ID,
			User:        Author{ID: rv.UserID, Username: rv.Author.Username},
			Rating:      rv.Rating,
			Description: rv.Description,
			CreatedAt:   rv.CreatedAt,
			Replies:     make([]Reply, 0, len(rv.Replies)),
		}
		for _, rp := range rv.Replies {
			review.Replies = append(review.Replies, Reply{
				ID:          rp.ID,
				User:        Author{ID: rp.UserID, Username: rp.Author.Username},
				Description: rp.Description,
				CreatedAt:   rp.CreatedAt,
			})
		}
		detail.Reviews = append(detail.Reviews, review)
	}
	return detail
}
