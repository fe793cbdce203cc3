package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// ReviewHandler appends reviews and replies. Both answer with the updated
// recipe so clients can re-render without another fetch.
type ReviewHandler struct {
	reviewService service.IReviewService
}

func NewReviewHandler(reviewService service.IReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes expects router to be behind AuthMiddleware.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/:id/reviews", h.AddReview)
	router.POST("/recipes/:id/reviews/:reviewId/replies", h.AddReply)
}

func (h *ReviewHandler) AddReview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "id", "recipe")
	if !ok {
		return
	}

	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	recipe, err := h.reviewService.AddReview(c.Request.Context(), userID, recipeID, req.Rating, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewRecipeDetail(recipe))
}

func (h *ReviewHandler) AddReply(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "id", "recipe")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "reviewId", "review")
	if !ok {
		return
	}

	var req types.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	recipe, err := h.reviewService.AddReply(c.Request.Context(), userID, recipeID, reviewID, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewRecipeDetail(recipe))
}
