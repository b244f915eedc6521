package service

import (
	"context"

	"got-server/internal/models"
)

// StoryGenerator — сюжетный коллаборатор с точки зрения игрового сервиса.
type StoryGenerator interface {
	StartNode(ctx context.Context, character models.Character) (models.StoryNode, error)
	NextTurn(ctx context.Context, history []models.HistoryEntry, character models.Character, lastChoice string, turnCount, maxTurns int) (models.StoryNode, error)
}

// ImageProvider — коллаборатор изображений с точки зрения игрового сервиса.
// Пустая строка означает «изображение недоступно».
type ImageProvider interface {
	SceneImage(ctx context.Context, visualDescription string) string
	Portrait(ctx context.Context, name string) string
}

var (
	_ StoryGenerator = (*StoryService)(nil)
	_ ImageProvider  = (*ImageService)(nil)
)
