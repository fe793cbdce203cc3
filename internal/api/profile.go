package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// ProfileHandler serves the signed-in user's profile and the recipes of any
// user.
type ProfileHandler struct {
	profileService service.IProfileService
	recipeService  service.IRecipeService
}

func NewProfileHandler(profileService service.IProfileService, recipeService service.IRecipeService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		recipeService:  recipeService,
	}
}

// RegisterRoutes expects router to be behind AuthMiddleware.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/profile", h.GetProfile)
		users.PUT("/profile/photo", h.UpdateProfilePhoto)
		users.GET("/:userId/recipes", h.ListUserRecipes)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	user, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewUserSummary(user))
}

// UpdateProfilePhoto replaces the profile photo with the multipart "photo"
// file.
func (h *ProfileHandler) UpdateProfilePhoto(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	photo, err := readPhoto(c, "photo")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if photo == nil {
		badRequest(c, "photo is required")
		return
	}

	user, err := h.profileService.UpdateProfilePhoto(c.Request.Context(), userID, photo)
	if err != nil {
		respondError(c, err)
		return
	}
	summary := types.NewUserSummary(user)
	c.JSON(http.StatusOK, gin.H{
		"profilePhoto": summary.ProfilePhoto,
		"user":         summary,
	})
}

func (h *ProfileHandler) ListUserRecipes(c *gin.Context) {
	userID, ok := pathID(c, "userId", "user")
	if !ok {
		return
	}

	recipes, err := h.recipeService.ListUserRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	summaries := make([]types.RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, types.NewRecipeSummary(r))
	}
	c.JSON(http.StatusOK, summaries)
}
