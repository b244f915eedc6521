package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// openAIClient реализует TextGenerator поверх любого OpenAI-совместимого
// API (OpenRouter, Gemini-шлюзы и т.п.).
type openAIClient struct {
	client *openaigo.Client
	model  string
	logger *zap.Logger
}

func newOpenAIClient(cfg Config) *openAIClient {
	openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiConfig.BaseURL = cfg.BaseURL
	}
	openaiConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
	}
	return &openAIClient{
		client: openaigo.NewClientWithConfig(openaiConfig),
		model:  cfg.Model,
		logger: zap.L().Named("OpenAIClient"),
	}
}

func (c *openAIClient) GenerateText(ctx context.Context, systemPrompt, userInput string) (string, Usage, error) {
	var usage Usage

	if strings.TrimSpace(systemPrompt) == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usage, fmt.Errorf("%w: системный промпт пуст", ErrGenerationFailed)
	}

	messages := []openaigo.ChatCompletionMessage{
		{Role: openaigo.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if userInput != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{
			Role: openaigo.ChatMessageRoleUser, Content: userInput,
		})
	}

	startTime := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	duration := time.Since(startTime)

	if err != nil {
		c.logger.Error("Ошибка от AI API", zap.Duration("duration", duration), zap.Error(err))
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usage, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usage, fmt.Errorf("%w: получен пустой ответ", ErrGenerationFailed)
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	generatedText := resp.Choices[0].Message.Content

	usage.PromptTokens = resp.Usage.PromptTokens
	usage.CompletionTokens = resp.Usage.CompletionTokens
	usage.TotalTokens = resp.Usage.TotalTokens
	if usage.TotalTokens == 0 {
		// Провайдер не вернул usage — оцениваем через tiktoken.
		usage = estimateUsage(c.model, systemPrompt+userInput, generatedText)
	}
	if usage.TotalTokens > 0 {
		aiPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usage.PromptTokens))
		aiCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usage.CompletionTokens))
	}

	c.logger.Debug("Ответ от AI API получен",
		zap.Duration("duration", duration),
		zap.Int("responseLength", len(generatedText)),
		zap.Int("totalTokens", usage.TotalTokens),
	)
	return generatedText, usage, nil
}

// estimateUsage дает приблизительный подсчет токенов, когда API не вернул
// блок usage. Для незнакомых моделей используется кодировка cl100k_base.
func estimateUsage(model, prompt, completion string) Usage {
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tke, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return Usage{}
		}
	}
	promptTokens := len(tke.Encode(prompt, nil, nil))
	completionTokens := len(tke.Encode(completion, nil, nil))
	return Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
	}
}
