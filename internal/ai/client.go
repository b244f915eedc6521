package ai

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrGenerationFailed — ошибка генерации текста AI.
var ErrGenerationFailed = errors.New("ошибка генерации текста AI")

// Usage содержит информацию об использовании токенов.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// TextGenerator — интерфейс текстового AI-коллаборатора.
type TextGenerator interface {
	// GenerateText генерирует текст по системному промпту и вводу.
	// Пустой ответ считается ошибкой.
	GenerateText(ctx context.Context, systemPrompt, userInput string) (string, Usage, error)
}

// Config — настройки текстового клиента.
type Config struct {
	// ClientType выбирает реализацию: "openai" или "ollama".
	ClientType string
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
}

// NewTextGenerator создает клиент по типу из конфигурации.
func NewTextGenerator(cfg Config) (TextGenerator, error) {
	switch cfg.ClientType {
	case "openai":
		return newOpenAIClient(cfg), nil
	case "ollama":
		return newOllamaClient(cfg)
	default:
		return nil, fmt.Errorf("неизвестный тип AI клиента: '%s'", cfg.ClientType)
	}
}
