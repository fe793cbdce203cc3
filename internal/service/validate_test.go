package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipe-share/backend/internal/models"
)

func TestCategoryValidator(t *testing.T) {
	type input struct {
		Category string `json:"category" validate:"category"`
	}

	for _, c := range models.Categories {
		assert.NoError(t, validateStruct(input{Category: string(c)}), c)
	}

	for _, bad := range []string{"", "Brunch", "DINNER"} {
		err := validateStruct(input{Category: bad})
		assert.Equal(t, KindValidation, KindOf(err), bad)
		assert.Equal(t, "category must be one of: Breakfast, Lunch, Dinner, Dessert, Snack", MessageOf(err))
	}
}
