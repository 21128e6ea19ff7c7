package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameboxd/backend/internal/auth"
	"gameboxd/backend/internal/service"
)

// ListHandler serves list CRUD and membership.
type ListHandler struct {
	lists *service.ListService
}

func NewListHandler(lists *service.ListService) *ListHandler {
	return &ListHandler{lists: lists}
}

// region --- DTOs ---

// CreateListInput defines the structure for creating a list.
type CreateListInput struct {
	Name string `json:"name" binding:"required" example:"Backlog"`
}

// UpdateListInput defines the structure for renaming a list or toggling its
// visibility.
type UpdateListInput struct {
	Name     *string `json:"name" example:"Finished in 2025"`
	IsPublic *bool   `json:"is_public" example:"true"`
}

// AddGameInput defines the structure for adding a game to a list.
type AddGameInput struct {
	GameID string `json:"game_id" binding:"required" example:"3498"`
}

// endregion

// GetLists godoc
// @Summary      List my lists
// @Description  Returns every list the authenticated user owns, private ones included.
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.List
// @Failure      401  {object}  ErrorResponse
// @Router       /lists [get]
func (h *ListHandler) GetLists(c *gin.Context) {
	userID, _ := auth.UserID(c)

	lists, err := h.lists.ListsByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lists)
}

// CreateList godoc
// @Summary      Create a list
// @Description  Creates a new, private-by-default list.
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateListInput true "List Info"
// @Success      201  {object}  models.List
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /lists [post]
func (h *ListHandler) CreateList(c *gin.Context) {
	userID, _ := auth.UserID(c)

	var input CreateListInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.lists.Create(input.Name, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, list)
}

// GetList godoc
// @Summary      Get a list with its items
// @Description  Returns one list with its items, each joined with its game's minimal record. Private lists are only visible to their owner.
// @Tags         lists
// @Produce      json
// @Param        id path int true "List ID"
// @Success      200 {object} models.List
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /lists/{id} [get]
func (h *ListHandler) GetList(c *gin.Context) {
	viewerID, _ := auth.UserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID"})
		return
	}

	list, err := h.lists.ByID(c.Request.Context(), uint(id), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// UpdateList godoc
// @Summary      Update a list
// @Description  Renames a list or toggles its visibility, scoped to the owner.
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "List ID"
// @Param        input body      UpdateListInput true  "Fields to update"
// @Success      200  {object}  models.List
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Not found or not yours"
// @Router       /lists/{id} [patch]
func (h *ListHandler) UpdateList(c *gin.Context) {
	userID, _ := auth.UserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID"})
		return
	}

	var input UpdateListInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.lists.Update(uint(id), userID, service.UpdateListInput{
		Name:     input.Name,
		IsPublic: input.IsPublic,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// DeleteList godoc
// @Summary      Delete a list
// @Description  Deletes a list and its items, scoped to the owner.
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "List ID"
// @Success      200 {object} map[string]string "{"message": "List deleted"}"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Not found or not yours"
// @Router       /lists/{id} [delete]
func (h *ListHandler) DeleteList(c *gin.Context) {
	userID, _ := auth.UserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID"})
		return
	}

	if err := h.lists.Delete(uint(id), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "List deleted"})
}

// AddGameToList godoc
// @Summary      Add a game to a list
// @Description  Inserts a game into a list the user owns. A duplicate game is rejected.
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "List ID"
// @Param        input body      AddGameInput true  "Game"
// @Success      201  {object}  map[string]string "{"message": "Game added to list"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Not found or not yours"
// @Failure      409  {object}  ErrorResponse "Already in list"
// @Router       /lists/{id}/games [post]
func (h *ListHandler) AddGameToList(c *gin.Context) {
	userID, _ := auth.UserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID"})
		return
	}

	var input AddGameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.lists.AddGame(uint(id), input.GameID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Game added to list"})
}

// RemoveListItem godoc
// @Summary      Remove an item from a list
// @Description  Deletes one membership row by item id, scoped to a list the user owns.
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int true "List ID"
// @Param        itemId path int true "List Item ID"
// @Success      200 {object} map[string]string "{"message": "Item removed"}"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Not found or not yours"
// @Router       /lists/{id}/items/{itemId} [delete]
func (h *ListHandler) RemoveListItem(c *gin.Context) {
	userID, _ := auth.UserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID"})
		return
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	if err := h.lists.RemoveItem(uint(id), uint(itemID), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}
