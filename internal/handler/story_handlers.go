package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"got-server/internal/models"
)

// storyStart генерирует стартовую сцену для нового персонажа без открытия
// сессии. Сбой генерации здесь блокирующий.
func (h *Handler) storyStart(c *gin.Context) {
	var req storyStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	house := models.House(req.Character.House)
	if !house.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Unknown house: " + req.Character.House})
		return
	}

	character := models.NewCharacter(req.Character.Name, house, req.Character.Bio)
	node, err := h.story.StartNode(c.Request.Context(), character)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, node)
}

// storyTurn генерирует следующую сцену по переданному состоянию. Вызывающая
// сторона сама владеет сессией; при сбое генерации возвращается резервная
// сцена, поэтому ошибка возможна только при обрыве запроса.
func (h *Handler) storyTurn(c *gin.Context) {
	var req storyTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if !req.Character.House.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Unknown house: " + string(req.Character.House)})
		return
	}

	node, err := h.story.NextTurn(c.Request.Context(), req.History, req.Character, req.LastChoice, req.TurnCount, req.MaxTurns)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, node)
}
