package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameboxd/backend/internal/auth"
	"gameboxd/backend/internal/service"
)

// UserHandler serves the authenticated user's own record and other users'
// public profiles and stats.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// region --- DTOs ---

// UpdateMeInput defines the structure for profile updates.
type UpdateMeInput struct {
	Name     *string `json:"name" example:"newname"`
	Bio      *string `json:"bio" example:"I play too much."`
	Password *string `json:"password" example:"newpassword123"`
}

// endregion

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the private profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, _ := auth.UserID(c)

	user, err := h.users.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary      Update current user's profile
// @Description  Applies a partial update to the authenticated user; a new password is re-hashed.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateMeInput true "Fields to update"
// @Success      200  {object}  models.User
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, _ := auth.UserID(c)

	var input UpdateMeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Update(userID, service.UpdateUserInput{
		Name:     input.Name,
		Bio:      input.Bio,
		Password: input.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteMe godoc
// @Summary      Delete current user's account
// @Description  Deletes the authenticated user and everything they own.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string "{"message": "Account deleted"}"
// @Failure      401  {object}  ErrorResponse
// @Router       /me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID, _ := auth.UserID(c)

	if err := h.users.Delete(userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// GetUserStats godoc
// @Summary      Get a user's activity stats
// @Description  Returns review, list, liked-game counts and the play-status breakdown.
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  service.UserStats
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/stats [get]
func (h *UserHandler) GetUserStats(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	stats, err := h.users.Stats(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetUserProfile godoc
// @Summary      Get a user's public profile
// @Description  Returns the user's recent reviews and public lists. Private lists are never included.
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  service.PublicProfile
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/profile [get]
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	profile, err := h.users.PublicProfile(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
