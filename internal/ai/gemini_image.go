package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ImageGenerator — интерфейс коллаборатора генерации изображений.
// Возвращает data URI или пустую строку; ошибка означает только сбой вызова,
// вызывающая сторона трактует его как «изображения нет».
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// geminiImageClient реализует ImageGenerator через Gemini.
type geminiImageClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiImageClient создает клиент Gemini для изображений.
func NewGeminiImageClient(ctx context.Context, apiKey, model string) (ImageGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("не удалось создать Gemini клиент: %w", err)
	}
	return &geminiImageClient{
		client: client,
		model:  model,
		logger: zap.L().Named("GeminiImageClient"),
	}, nil
}

func (c *geminiImageClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		imageRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", fmt.Errorf("запрос генерации изображения не удался: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				imageRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
				mimeType := blob.MIMEType
				if mimeType == "" {
					mimeType = "image/png"
				}
				return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(blob.Data)), nil
			}
		}
	}

	// Модель ответила, но без картинки.
	imageRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "empty"}).Inc()
	c.logger.Debug("Gemini вернул ответ без изображения", zap.String("model", c.model))
	return "", nil
}
