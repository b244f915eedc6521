package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"got-server/internal/ai"
)

// ImageService оборачивает коллаборатора изображений. Сбои полностью
// проглатываются: видимый эффект — отсутствие картинки, результат "" и
// запись в лог.
type ImageService struct {
	gen    ai.ImageGenerator
	logger *zap.Logger
}

// NewImageService создает сервис генерации изображений.
func NewImageService(gen ai.ImageGenerator, logger *zap.Logger) *ImageService {
	return &ImageService{
		gen:    gen,
		logger: logger.Named("ImageService"),
	}
}

// SceneImage генерирует изображение сцены по visual_description.
func (s *ImageService) SceneImage(ctx context.Context, visualDescription string) string {
	if visualDescription == "" {
		return ""
	}
	image, err := s.gen.GenerateImage(ctx, sceneImageStyle+visualDescription)
	if err != nil {
		s.logger.Warn("Генерация изображения сцены не удалась", zap.Error(err))
		return ""
	}
	return image
}

// Portrait генерирует портрет NPC по имени.
func (s *ImageService) Portrait(ctx context.Context, name string) string {
	if name == "" {
		return ""
	}
	image, err := s.gen.GenerateImage(ctx, fmt.Sprintf(portraitStyle, name))
	if err != nil {
		s.logger.Warn("Генерация портрета не удалась", zap.String("name", name), zap.Error(err))
		return ""
	}
	return image
}
