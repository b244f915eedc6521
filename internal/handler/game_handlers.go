package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"got-server/internal/models"
)

// startGame открывает новую игровую сессию и возвращает стартовое состояние.
func (h *Handler) startGame(c *gin.Context) {
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

	state, err := h.game.StartGame(c.Request.Context(), req.Character.Name, house, req.Character.Bio)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, state)
}

// advanceTurn выполняет ход в открытой сессии. Пока предыдущий ход в полете,
// повторные запросы получают 409.
func (h *Handler) advanceTurn(c *gin.Context) {
	var req gameTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	state, err := h.game.AdvanceTurn(c.Request.Context(), c.Param("name"), req.OptionID, req.OptionText)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// getGame возвращает текущий вид сессии, включая изображения, дошедшие из
// фоновых задач после последнего чтения.
func (h *Handler) getGame(c *gin.Context) {
	state, err := h.game.Snapshot(c.Param("name"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// manualSave сохраняет открытую сессию по запросу игрока.
func (h *Handler) manualSave(c *gin.Context) {
	if err := h.game.ManualSave(c.Request.Context(), c.Param("name")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// loadGame восстанавливает сессию из сохранения.
func (h *Handler) loadGame(c *gin.Context) {
	var req loadGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	state, err := h.game.LoadGame(c.Request.Context(), req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *Handler) listSaves(c *gin.Context) {
	saves, err := h.game.ListSaves(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, saves)
}

func (h *Handler) deleteSave(c *gin.Context) {
	if err := h.game.DeleteSave(c.Request.Context(), c.Param("name")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
