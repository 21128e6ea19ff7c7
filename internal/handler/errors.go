package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameboxd/backend/internal/rawg"
	"gameboxd/backend/internal/service"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// respondError maps a service error to an HTTP status. Unexpected errors are
// logged and answered with a generic message so internals never leak.
func respondError(c *gin.Context, err error) {
	var apiErr *rawg.APIError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrAlreadyInList):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		if apiErr.Status == http.StatusNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		log.Printf("catalog provider error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Game catalog is unavailable"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
