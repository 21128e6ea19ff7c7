package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameboxd/backend/internal/auth"
	"gameboxd/backend/internal/service"
)

// ReviewHandler serves review CRUD.
type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// region --- DTOs ---

// CreateReviewInput defines the structure for posting a review.
type CreateReviewInput struct {
	GameID  string `json:"game_id" binding:"required" example:"3498"`
	Rating  *int   `json:"rating" binding:"required,gte=0,lte=10" example:"9"`
	Comment string `json:"comment" binding:"required" example:"A masterpiece."`
}

// UpdateReviewInput defines the structure for editing a review.
type UpdateReviewInput struct {
	Rating  *int    `json:"rating" example:"7"`
	Comment *string `json:"comment" example:"Holds up on a second playthrough."`
}

// endregion

// CreateReview godoc
// @Summary      Post a review
// @Description  Creates a review for a game. One review per user per game.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateReviewInput true "Review"
// @Success      201  {object}  models.Review
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Already reviewed"
// @Router       /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, _ := auth.UserID(c)

	var input CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviews.Create(userID, input.GameID, *input.Rating, input.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// MyReviews godoc
// @Summary      List my reviews
// @Description  Returns the authenticated user's reviews, newest first, each with its game's minimal record.
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Review
// @Failure      401  {object}  ErrorResponse
// @Router       /reviews/me [get]
func (h *ReviewHandler) MyReviews(c *gin.Context) {
	userID, _ := auth.UserID(c)

	reviews, err := h.reviews.ByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// UpdateReview godoc
// @Summary      Edit a review
// @Description  Applies a partial edit to a review the user owns.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Review ID"
// @Param        input body      UpdateReviewInput true  "Fields to update"
// @Success      200  {object}  models.Review
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Not found or not yours"
// @Router       /reviews/{id} [patch]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, _ := auth.UserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var input UpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviews.Update(uint(id), userID, service.UpdateReviewInput{
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview godoc
// @Summary      Delete a review
// @Description  Deletes a review the user owns.
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Review ID"
// @Success      200 {object} map[string]string "{"message": "Review deleted"}"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Not found or not yours"
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, _ := auth.UserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	if err := h.reviews.Delete(uint(id), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// GameReviews godoc
// @Summary      List a game's reviews
// @Description  Returns every review for a game, each with the reviewer's public identity.
// @Tags         games
// @Produce      json
// @Param        id path string true "Game ID"
// @Success      200 {array} models.Review
// @Router       /games/{id}/reviews [get]
func (h *ReviewHandler) GameReviews(c *gin.Context) {
	reviews, err := h.reviews.ByGame(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
