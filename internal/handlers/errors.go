package handlers

import (
	"errors"
	"net/http"

	"github.com/danghm/famledger/internal/apperrors"
	"github.com/danghm/famledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses:
// validation 400, forbidden 403, not found 404, everything else 500.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Request refused at authorization boundary", "error", err.Error())
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this scope"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
