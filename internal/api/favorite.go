package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// FavoriteHandler serves the signed-in user's favorites.
type FavoriteHandler struct {
	favoriteService service.IFavoriteService
}

func NewFavoriteHandler(favoriteService service.IFavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// RegisterRoutes expects router to be behind AuthMiddleware.
func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes/favorites", h.ListFavorites)
	router.POST("/recipes/:id/favorite", h.AddFavorite)
	router.DELETE("/recipes/:id/favorite", h.RemoveFavorite)
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	recipes, err := h.favoriteService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favoritedDetails(recipes))
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "id", "recipe")
	if !ok {
		return
	}

	if err := h.favoriteService.AddFavorite(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe added to favorites"})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "id", "recipe")
	if !ok {
		return
	}

	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe removed from favorites"})
}

// favoritedDetails converts full aggregates, marking each as favorited.
func favoritedDetails(recipes []*models.Recipe) []types.RecipeDetail {
	details := make([]types.RecipeDetail, 0, len(recipes))
	for _, r := range recipes {
		d := types.NewRecipeDetail(r)
		fav := true
		d.IsFavorited = &fav
		details = append(details, d)
	}
	return details
}
