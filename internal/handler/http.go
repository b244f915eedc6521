package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"got-server/internal/config"
	"got-server/internal/models"
	"got-server/internal/service"
)

// GameOrchestrator — сессионная поверхность игрового сервиса с точки зрения
// HTTP-слоя.
type GameOrchestrator interface {
	StartGame(ctx context.Context, name string, house models.House, bio string) (models.GameState, error)
	AdvanceTurn(ctx context.Context, name, optionID, optionText string) (models.GameState, error)
	Snapshot(name string) (models.GameState, error)
	ManualSave(ctx context.Context, name string) error
	LoadGame(ctx context.Context, name string) (models.GameState, error)
	ListSaves(ctx context.Context) ([]models.SaveFile, error)
	DeleteSave(ctx context.Context, name string) error
}

var _ GameOrchestrator = (*service.GameService)(nil)

// Handler обслуживает HTTP API игрового сервера.
type Handler struct {
	story  service.StoryGenerator
	images service.ImageProvider
	game   GameOrchestrator
	cfg    *config.Config
	logger *zap.Logger
}

func NewHandler(story service.StoryGenerator, images service.ImageProvider, game GameOrchestrator, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		story:  story,
		images: images,
		game:   game,
		cfg:    cfg,
		logger: logger.Named("Handler"),
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", h.healthz)

	storyGroup := router.Group("/api/story")
	{
		storyGroup.POST("/start", h.storyStart)
		storyGroup.POST("/turn", h.storyTurn)
	}

	imageGroup := router.Group("/api/images")
	{
		imageGroup.POST("/scene", h.sceneImage)
		imageGroup.POST("/portrait", h.portrait)
	}

	gameGroup := router.Group("/api/game")
	{
		gameGroup.POST("/start", h.startGame)
		gameGroup.POST("/load", h.loadGame)
		gameGroup.GET("/:name", h.getGame)
		gameGroup.POST("/:name/turn", h.advanceTurn)
		gameGroup.POST("/:name/save", h.manualSave)
	}

	savesGroup := router.Group("/api/saves")
	{
		savesGroup.GET("", h.listSaves)
		savesGroup.DELETE("/:name", h.deleteSave)
	}
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:     "ok",
		TextModel:  h.cfg.AIModel,
		ImageModel: h.cfg.GeminiImageModel,
	})
}
