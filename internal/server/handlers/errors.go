package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/branches"
	"github.com/mamadbah2/herdtrack/internal/service/mapview"
	"github.com/mamadbah2/herdtrack/internal/service/session"
	"github.com/mamadbah2/herdtrack/pkg/clients/mapbox"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, mapview.ErrTokenRequired), errors.Is(err, mapbox.ErrInvalidToken):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, mapview.ErrViewNotFound),
		errors.Is(err, mapview.ErrMarkerNotFound):
		return http.StatusNotFound
	case errors.Is(err, branches.ErrBranchInUse), errors.Is(err, mapview.ErrAlreadyInitialized):
		return http.StatusConflict
	case errors.Is(err, mapview.ErrUnmounted):
		return http.StatusGone
	case errors.Is(err, session.ErrUnknownSession):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": "..."} with the matching status code.
// Unexpected failures are logged and their details hidden from the client.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	logger.Debug("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}

func invalidBody(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}
