package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"got-server/internal/models"
)

// sceneImage генерирует фоновое изображение сцены. Сбой генерации не ошибка:
// ответ всегда 200, image становится null.
func (h *Handler) sceneImage(c *gin.Context) {
	var req sceneImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	image := h.images.SceneImage(c.Request.Context(), req.VisualDescription)
	c.JSON(http.StatusOK, newImageResponse(image))
}

// portrait генерирует портрет NPC. Та же политика, что и для сцен: 200 с
// null при сбое.
func (h *Handler) portrait(c *gin.Context) {
	var req portraitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	image := h.images.Portrait(c.Request.Context(), req.Name)
	c.JSON(http.StatusOK, newImageResponse(image))
}
