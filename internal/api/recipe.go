package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/storage"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// RecipeHandler serves the recipe collection and single recipes.
type RecipeHandler struct {
	recipeService   service.IRecipeService
	favoriteService service.IFavoriteService
}

func NewRecipeHandler(recipeService service.IRecipeService, favoriteService service.IFavoriteService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		favoriteService: favoriteService,
	}
}

// RegisterRoutes registers the public reads on public and the writes on
// protected, which must be behind AuthMiddleware. List is expected to run
// behind OptionalAuthMiddleware.
func (h *RecipeHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/recipes", h.ListRecipes)
	public.GET("/recipes/:id", h.GetRecipe)

	protected.POST("/recipes", h.CreateRecipe)
	protected.PUT("/recipes/:id", h.UpdateRecipe)
	protected.DELETE("/recipes/:id", h.DeleteRecipe)
}

// ListRecipes returns recipes most recent first, filtered by ?category= and
// ?q=. Signed-in callers get isFavorited on each entry.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := types.RecipeFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("q")),
	}
	if filter.Category == "All" {
		filter.Category = ""
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]types.RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, types.NewRecipeSummary(r))
	}

	if userID, ok := middleware.UserIDFromContext(c); ok && len(recipes) > 0 {
		ids := make([]uuid.UUID, len(recipes))
		for i, r := range recipes {
			ids[i] = r.ID
		}
		favorited, err := h.favoriteService.FavoritedSet(c.Request.Context(), userID, ids)
		if err != nil {
			respondError(c, err)
			return
		}
		for i := range summaries {
			fav := favorited[summaries[i].ID]
			summaries[i].IsFavorited = &fav
		}
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "recipe")
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewRecipeDetail(recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fields, photo, err := bindRecipe(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, fields, photo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewRecipeDetail(recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "recipe")
	if !ok {
		return
	}

	fields, photo, err := bindRecipe(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, fields, photo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewRecipeDetail(recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "recipe")
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// bindRecipe reads recipe fields from a multipart form (ingredients as a
// JSON array, optional "photo" file) or from a JSON body.
func bindRecipe(c *gin.Context) (types.RecipeFields, *storage.Upload, error) {
	var fields types.RecipeFields
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		if err := c.ShouldBindJSON(&fields); err != nil {
			return fields, nil, errors.New("invalid request body")
		}
		return fields, nil, nil
	}

	fields.Title = c.PostForm("title")
	fields.Instructions = c.PostForm("instructions")
	fields.Category = c.PostForm("category")

	if raw := strings.TrimSpace(c.PostForm("ingredients")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &fields.Ingredients); err != nil {
			return fields, nil, errors.New("ingredients must be a JSON array of strings")
		}
	}

	if raw := strings.TrimSpace(c.PostForm("cookingTime")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fields, nil, errors.New("cookingTime must be a whole number")
		}
		fields.CookingTime = n
	}

	photo, err := readPhoto(c, "photo")
	if err != nil {
		return fields, nil, err
	}
	return fields, photo, nil
}
