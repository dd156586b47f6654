package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"home-service-server/services"
)

// respondError translates service errors into HTTP responses. Unrecognized
// errors become a 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": "The requested resource does not exist",
		})
	case errors.Is(err, services.ErrAlreadyRated):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Already rated",
			"message": "A rating has already been submitted for this request",
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Invalid transition",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid argument",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Something went wrong. Please try again later.",
		})
	}
}
