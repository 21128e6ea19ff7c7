package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameboxd/backend/internal/auth"
	"gameboxd/backend/internal/models"
	"gameboxd/backend/internal/rawg"
	"gameboxd/backend/internal/service"
)

// GameHandler serves the catalog gateway: browse, search, details, DLCs,
// genres, likes and play statuses.
type GameHandler struct {
	games *service.GameService
}

func NewGameHandler(games *service.GameService) *GameHandler {
	return &GameHandler{games: games}
}

// region --- DTOs ---

// LikeGameInput defines the structure for toggling a like.
type LikeGameInput struct {
	GameID string `json:"game_id" binding:"required" example:"3498"`
}

// SetStatusInput defines the structure for recording a play status.
type SetStatusInput struct {
	GameID string `json:"game_id" binding:"required" example:"3498"`
	Status string `json:"status" binding:"required" example:"PLAYING"`
}

// endregion

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 40 {
		limit = 40 // Max provider page size
	}
	return page, limit
}

// GetGames godoc
// @Summary      Browse the game catalog
// @Description  Returns a paginated catalog page, optionally filtered by genre, ordering and release dates. Liked flags are stamped for authenticated viewers.
// @Tags         games
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Items per page" default(20)
// @Param        genres    query string false "Comma-separated genre slugs"
// @Param        ordering  query string false "Provider ordering, e.g. -released"
// @Param        dates     query string false "Release date range YYYY-MM-DD,YYYY-MM-DD"
// @Success      200 {object} PaginatedResponse[service.GameSummary]
// @Failure      502 {object} ErrorResponse "Catalog unavailable"
// @Router       /games [get]
func (h *GameHandler) GetGames(c *gin.Context) {
	viewerID, _ := auth.UserID(c)
	page, limit := pageParams(c)

	result, err := h.games.Browse(c.Request.Context(), rawg.GamesQuery{
		Page:     page,
		PageSize: limit,
		Genres:   c.Query("genres"),
		Ordering: c.Query("ordering"),
		Dates:    c.Query("dates"),
	}, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(result.Results, result.Count, page, limit))
}

// SearchGames godoc
// @Summary      Search the game catalog
// @Description  Full-text search by name against the catalog provider.
// @Tags         games
// @Produce      json
// @Param        query     query string true  "Search query"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Items per page" default(20)
// @Success      200 {object} PaginatedResponse[service.GameSummary]
// @Failure      502 {object} ErrorResponse "Catalog unavailable"
// @Router       /games/search [get]
func (h *GameHandler) SearchGames(c *gin.Context) {
	viewerID, _ := auth.UserID(c)
	page, limit := pageParams(c)

	result, err := h.games.Browse(c.Request.Context(), rawg.GamesQuery{
		Page:     page,
		PageSize: limit,
		Search:   c.Query("query"),
	}, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(result.Results, result.Count, page, limit))
}

// GetGame godoc
// @Summary      Get game details
// @Description  Merges provider details with the site rating and, for authenticated viewers, like/status/list state.
// @Tags         games
// @Produce      json
// @Param        id path string true "Game ID"
// @Success      200 {object} service.GameDetails
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      502 {object} ErrorResponse "Catalog unavailable"
// @Router       /games/{id} [get]
func (h *GameHandler) GetGame(c *gin.Context) {
	viewerID, _ := auth.UserID(c)

	details, err := h.games.Details(c.Request.Context(), c.Param("id"), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// GetGameDLCs godoc
// @Summary      Get a game's DLCs
// @Description  Proxies the provider's additions list for a game.
// @Tags         games
// @Produce      json
// @Param        id path string true "Game ID"
// @Success      200 {array} rawg.GameSummary
// @Failure      502 {object} ErrorResponse "Catalog unavailable"
// @Router       /games/{id}/dlcs [get]
func (h *GameHandler) GetGameDLCs(c *gin.Context) {
	dlcs, err := h.games.DLCs(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dlcs)
}

// GetGenres godoc
// @Summary      List catalog genres
// @Tags         games
// @Produce      json
// @Success      200 {array} rawg.Genre
// @Failure      502 {object} ErrorResponse "Catalog unavailable"
// @Router       /genres [get]
func (h *GameHandler) GetGenres(c *gin.Context) {
	genres, err := h.games.Genres(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, genres)
}

// LikeGame godoc
// @Summary      Toggle a game like
// @Description  Likes the game if not liked, unlikes it otherwise, and reports the resulting state.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body LikeGameInput true "Game"
// @Success      200 {object} map[string]any "{"message": "...", "liked": true}"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /games/like [post]
func (h *GameHandler) LikeGame(c *gin.Context) {
	userID, _ := auth.UserID(c)

	var input LikeGameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	liked, err := h.games.ToggleLike(userID, input.GameID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Game unliked"
	if liked {
		message = "Game liked"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "liked": liked})
}

// LikedGames godoc
// @Summary      List my liked games
// @Description  Returns the IDs of the games the authenticated user likes, newest first.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} string
// @Failure      401 {object} ErrorResponse
// @Router       /games/liked [get]
func (h *GameHandler) LikedGames(c *gin.Context) {
	userID, _ := auth.UserID(c)

	ids, err := h.games.LikedGameIDs(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	c.JSON(http.StatusOK, ids)
}

// SetGameStatus godoc
// @Summary      Set my play status for a game
// @Description  Records PLAYING, COMPLETED or WANT_TO_PLAY, replacing any previous status for the game.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SetStatusInput true "Status"
// @Success      200 {object} models.GameStatus
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /games/status [post]
func (h *GameHandler) SetGameStatus(c *gin.Context) {
	userID, _ := auth.UserID(c)

	var input SetStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.games.SetStatus(userID, input.GameID, models.PlayStatus(input.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// RemoveGameStatus godoc
// @Summary      Clear my play status for a game
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Game ID"
// @Success      200 {object} map[string]string "{"message": "Status removed"}"
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /games/{id}/status [delete]
func (h *GameHandler) RemoveGameStatus(c *gin.Context) {
	userID, _ := auth.UserID(c)

	if err := h.games.RemoveStatus(userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status removed"})
}

// GetGameStatuses godoc
// @Summary      List my play statuses
// @Description  Returns the authenticated user's statuses, optionally filtered by one status.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "PLAYING | COMPLETED | WANT_TO_PLAY"
// @Success      200 {array} models.GameStatus
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /games/status [get]
func (h *GameHandler) GetGameStatuses(c *gin.Context) {
	userID, _ := auth.UserID(c)

	var filter *models.PlayStatus
	if raw := c.Query("status"); raw != "" {
		status := models.PlayStatus(raw)
		filter = &status
	}

	statuses, err := h.games.StatusesByUser(userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if statuses == nil {
		statuses = []models.GameStatus{}
	}

	c.JSON(http.StatusOK, statuses)
}
