package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"got-server/internal/ai"
	"got-server/internal/game"
	"got-server/internal/models"
)

// StoryService генерирует сцены через текстового AI-коллаборатора и
// валидирует его ответы на границе. Ответ — недоверенный ввод: JSON чистится
// от markdown-ограждений, непарные speaker/dialogue сбрасываются, пустой
// список опций дополняется вариантом «повторить».
type StoryService struct {
	gen    ai.TextGenerator
	cfg    game.Config
	logger *zap.Logger
}

// NewStoryService создает сервис генерации сюжета.
func NewStoryService(gen ai.TextGenerator, cfg game.Config, logger *zap.Logger) *StoryService {
	return &StoryService{
		gen:    gen,
		cfg:    cfg,
		logger: logger.Named("StoryService"),
	}
}

// StartNode запрашивает стартовую сцену. В отличие от хода, сбой здесь
// блокирующий: ошибка отдается вызывающей стороне, состояние не меняется.
func (s *StoryService) StartNode(ctx context.Context, character models.Character) (models.StoryNode, error) {
	node, err := s.fetchNode(ctx, buildStartPrompt(character))
	if err != nil {
		s.logger.Error("Не удалось сгенерировать стартовую сцену",
			zap.String("character", character.Name), zap.Error(err))
		return models.StoryNode{}, fmt.Errorf("%w: %v", models.ErrStoryGeneration, err)
	}
	return node, nil
}

// NextTurn запрашивает следующую сцену. Любой сбой генерации или парсинга
// восстанавливается локально fallback-нодой, чтобы игра никогда не осталась
// без вариантов действий. Единственное исключение — отмена контекста: она
// отдается как ошибка, выбор игрока при этом не откатывается.
func (s *StoryService) NextTurn(ctx context.Context, history []models.HistoryEntry, character models.Character, lastChoice string, turnCount, maxTurns int) (models.StoryNode, error) {
	if maxTurns <= 0 {
		maxTurns = s.cfg.MaxTurns
	}
	prompt := buildTurnPrompt(history, character, lastChoice, turnCount, maxTurns, s.cfg.Acts)

	node, err := s.fetchNode(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return models.StoryNode{}, fmt.Errorf("%w: %v", models.ErrStoryGeneration, ctx.Err())
		}
		s.logger.Warn("Генерация хода не удалась, подставляем fallback-сцену",
			zap.Int("turnCount", turnCount), zap.Error(err))
		return FallbackNode(), nil
	}
	return node, nil
}

func (s *StoryService) fetchNode(ctx context.Context, prompt string) (models.StoryNode, error) {
	text, usage, err := s.gen.GenerateText(ctx, systemPrompt, prompt)
	if err != nil {
		return models.StoryNode{}, err
	}
	s.logger.Debug("Сцена получена", zap.Int("totalTokens", usage.TotalTokens))

	var node models.StoryNode
	if err := json.Unmarshal([]byte(ai.ExtractJSON(text)), &node); err != nil {
		return models.StoryNode{}, fmt.Errorf("ответ не является валидным StoryNode: %w", err)
	}
	return sanitizeNode(node), nil
}

// sanitizeNode приводит ноду к инвариантам контракта: speaker и dialogue
// валидны только парой, options никогда не пусты.
func sanitizeNode(node models.StoryNode) models.StoryNode {
	if !node.HasDialogue() {
		node.Speaker = ""
		node.Dialogue = ""
	}
	if len(node.Options) == 0 {
		node.Options = []models.GameOption{{ID: "retry", Text: "Спробувати ще раз"}}
	}
	return node
}

// FallbackNode — фиксированная сцена-заглушка при сбое генерации: нулевые
// дельты, не game over, единственная опция «повторить».
func FallbackNode() models.StoryNode {
	return models.StoryNode{
		Narrative:         "Туман війни занадто густий... Магія стародавньої Валірії дала збій. Спробуйте ще раз.",
		VisualDescription: "Heavy fog in a dark forest",
		Options:           []models.GameOption{{ID: "retry", Text: "Спробувати ще раз"}},
	}
}
