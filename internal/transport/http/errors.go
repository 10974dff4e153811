package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/flexfour/internal/domain"
)

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrGameOver), errors.Is(err, domain.ErrInvalidMove):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidPosition),
		errors.Is(err, domain.ErrColumnFull),
		errors.Is(err, domain.ErrOccupiedCell),
		errors.Is(err, domain.ErrInvalidPlayer),
		errors.Is(err, domain.ErrInvalidBoard),
		errors.Is(err, domain.ErrNothingToUndo):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}
