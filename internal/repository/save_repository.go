package repository

import (
	"context"

	"got-server/internal/models"
)

// SaveRepository — хранилище сохранений с одним слотом на имя персонажа.
type SaveRepository interface {
	// Save выполняет upsert по character.name, last-write-wins.
	Save(ctx context.Context, sf models.SaveFile) error
	// Get возвращает сохранение или models.ErrSaveNotFound.
	Get(ctx context.Context, characterName string) (models.SaveFile, error)
	// List возвращает все сохранения, порядок не специфицирован.
	List(ctx context.Context) ([]models.SaveFile, error)
	// Delete удаляет сохранение; отсутствие записи не является ошибкой.
	Delete(ctx context.Context, characterName string) error
}
