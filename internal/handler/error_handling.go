package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"got-server/internal/models"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrSaveNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Error: "save not found"}
	case errors.Is(err, models.ErrSessionNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Error: "session not found"}
	case errors.Is(err, models.ErrTurnInFlight):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Error: "turn already in flight"}
	case errors.Is(err, models.ErrSessionTerminal):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Error: "session is finished"}
	case errors.Is(err, models.ErrStoryGeneration):
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "story generation failed"}
	default:
		zap.L().Error("Unhandled service error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "internal server error"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
