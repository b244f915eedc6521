// Package mocks содержит testify-моки репозиториев для юнит-тестов.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"got-server/internal/models"
)

// SaveRepository — мок repository.SaveRepository.
type SaveRepository struct {
	mock.Mock
}

func (m *SaveRepository) Save(ctx context.Context, sf models.SaveFile) error {
	args := m.Called(ctx, sf)
	return args.Error(0)
}

func (m *SaveRepository) Get(ctx context.Context, characterName string) (models.SaveFile, error) {
	args := m.Called(ctx, characterName)
	return args.Get(0).(models.SaveFile), args.Error(1)
}

func (m *SaveRepository) List(ctx context.Context) ([]models.SaveFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SaveFile), args.Error(1)
}

func (m *SaveRepository) Delete(ctx context.Context, characterName string) error {
	args := m.Called(ctx, characterName)
	return args.Error(0)
}
