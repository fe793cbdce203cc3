package types

import "github.com/google/uuid"

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RecipeFields are the mutable fields of a recipe. They arrive either as a
// JSON body or as multipart form fields next to an optional photo.
type RecipeFields struct {
	Title        string   `json:"title" validate:"required,max=255"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions string   `json:"instructions" validate:"required"`
	Category     string   `json:"category" validate:"required,category"`
	CookingTime  int      `json:"cookingTime" validate:"gte=0"`
}

// RecipeFilter narrows a recipe listing. Zero values mean no filter.
type RecipeFilter struct {
	Category string
	Search   string
	OwnerID  *uuid.UUID
}

// ReviewRequest represents the request body for adding a review
type ReviewRequest struct {
	Rating      int    `json:"rating" validate:"min=1,max=10"`
	Description string `json:"description" validate:"required"`
}

// ReplyRequest represents the request body for replying to a review
type ReplyRequest struct {
	Description string `json:"description" validate:"required"`
}
