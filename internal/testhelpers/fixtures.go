package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/models"
)

// CreateTestUser inserts a user with a throwaway password hash.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestRecipe inserts a Dinner recipe owned by ownerID.
func CreateTestRecipe(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Title:        title,
		Ingredients:  models.StringArray{"water", "salt"},
		Instructions: "Boil the water.",
		Category:     models.CategoryDinner,
		CookingTime:  10,
		UserID:       ownerID,
	}
	if err := db.Omit("Owner", "Reviews").Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}
