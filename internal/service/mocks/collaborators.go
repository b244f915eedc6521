// Package mocks содержит testify-моки коллабораторов игрового сервиса.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"got-server/internal/models"
)

// StoryGenerator — мок service.StoryGenerator.
type StoryGenerator struct {
	mock.Mock
}

func (m *StoryGenerator) StartNode(ctx context.Context, character models.Character) (models.StoryNode, error) {
	args := m.Called(ctx, character)
	return args.Get(0).(models.StoryNode), args.Error(1)
}

func (m *StoryGenerator) NextTurn(ctx context.Context, history []models.HistoryEntry, character models.Character, lastChoice string, turnCount, maxTurns int) (models.StoryNode, error) {
	args := m.Called(ctx, history, character, lastChoice, turnCount, maxTurns)
	return args.Get(0).(models.StoryNode), args.Error(1)
}

// ImageProvider — мок service.ImageProvider.
type ImageProvider struct {
	mock.Mock
}

func (m *ImageProvider) SceneImage(ctx context.Context, visualDescription string) string {
	args := m.Called(ctx, visualDescription)
	return args.String(0)
}

func (m *ImageProvider) Portrait(ctx context.Context, name string) string {
	args := m.Called(ctx, name)
	return args.String(0)
}
